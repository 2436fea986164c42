package server

const uiAppBootJS = `
function showTab(name) {
  document.querySelectorAll('.tabs button').forEach(b => b.classList.toggle('active', b.getAttribute('data-tab') === name));
  ['scripts', 'executors', 'developer'].forEach(t => byId('tab-' + t).classList.toggle('hidden', t !== name));
}

document.querySelectorAll('.tabs button').forEach(b => {
  b.addEventListener('click', () => showTab(b.getAttribute('data-tab')));
});
byId('revealClose').addEventListener('click', closeReveal);
byId('revealCopy').addEventListener('click', copyRevealed);
byId('devApply').addEventListener('click', applyDeveloperJSON);
byId('devReset').addEventListener('click', resetLocalEdits);
byId('saveSettings').addEventListener('click', saveSettings);
byId('executorForm').addEventListener('submit', addExecutor);

state.query = loadSavedQuery();
wireSearch();
Promise.all([refreshScripts(), refreshSettings(), refreshExecutors()]).catch(e => showErrorSnackbar(e.message));
`
