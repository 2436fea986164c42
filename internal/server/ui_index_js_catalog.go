package server

const uiAppCatalogJS = `
async function refreshScripts() {
  const url = '/api/v1/scripts' + (state.query ? ('?q=' + encodeURIComponent(state.query)) : '');
  const data = await apiJSON('GET', url);
  state.scripts = (data && data.scripts) || [];
  byId('countDisplay').textContent = (data && data.count_display) || '0 / 0';
  renderGrid();
}

function renderGrid() {
  const grid = byId('grid');
  grid.innerHTML = state.scripts.map(s => [
    '<div class="script-card" tabindex="0" data-id="' + escapeHtml(s.id) + '">',
    '  <img loading="lazy" alt="" src="' + escapeHtml(s.image_url) + '" />',
    '  <div class="meta">',
    '    <span class="name" title="' + escapeHtml(s.name) + '">' + escapeHtml(s.name) + '</span>',
    '    <span class="pill">#' + escapeHtml(s.id) + '</span>',
    '  </div>',
    '</div>',
  ].join('')).join('');
  byId('emptyState').classList.toggle('hidden', state.scripts.length > 0);
  grid.querySelectorAll('.script-card').forEach(card => {
    const open = () => startReveal(Number(card.getAttribute('data-id')));
    card.addEventListener('click', open);
    card.addEventListener('keydown', ev => {
      if (ev.key === 'Enter' || ev.key === ' ') {
        ev.preventDefault();
        open();
      }
    });
  });
}

function wireSearch() {
  const input = byId('search');
  input.value = state.query;
  const run = debounce(() => {
    refreshScripts().catch(e => showErrorSnackbar(e.message));
  }, 150);
  input.addEventListener('input', () => {
    state.query = input.value.trim();
    saveQuery(state.query);
    run();
  });
}
`
