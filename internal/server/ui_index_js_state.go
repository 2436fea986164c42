package server

const uiAppJS = uiAppStateJS + uiAppCatalogJS + uiAppRevealJS + uiAppDeveloperJS + uiAppExecutorsJS + uiAppBootJS

const uiAppStateJS = `
const state = {
  query: '',
  scripts: [],
  settings: null,
  revealPoll: null,
  revealOpen: false,
};
const SEARCH_STORAGE_KEY = 'scriptgate.search.v1';

function byId(id) {
  return document.getElementById(id);
}

function loadSavedQuery() {
  try { return sessionStorage.getItem(SEARCH_STORAGE_KEY) || ''; } catch (_) { return ''; }
}

function saveQuery(q) {
  try { sessionStorage.setItem(SEARCH_STORAGE_KEY, q); } catch (_) {}
}
`
