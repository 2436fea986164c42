package server

const uiAppExecutorsJS = `
async function refreshExecutors() {
  const data = await apiJSON('GET', '/api/v1/executors');
  const rows = (data && data.executors) || [];
  byId('executorRows').innerHTML = rows.length === 0
    ? '<tr><td colspan="4" class="muted">No executors yet.</td></tr>'
    : rows.map(e => [
      '<tr>',
      '<td>' + escapeHtml(e.name) + '</td>',
      '<td>' + escapeHtml(e.location) + '</td>',
      '<td>' + escapeHtml(e.size || '') + '</td>',
      '<td class="row"><a href="' + escapeHtml(e.download_url) + '">Download</a>',
      '<button type="button" class="danger" data-delete="' + e.index + '">Delete</button></td>',
      '</tr>',
    ].join('')).join('');
  byId('executorRows').querySelectorAll('button[data-delete]').forEach(btn => {
    btn.onclick = () => deleteExecutor(Number(btn.getAttribute('data-delete')));
  });
}

async function addExecutor(ev) {
  ev.preventDefault();
  const form = byId('executorForm');
  try {
    const res = await apiJSON('POST', '/api/v1/executors', new FormData(form));
    showSnackbar(res.message);
    form.reset();
    await refreshExecutors();
  } catch (e) {
    showErrorSnackbar(e.message);
  }
}

async function deleteExecutor(index) {
  try {
    const res = await apiJSON('DELETE', '/api/v1/executors/' + index);
    showSnackbar(res.message);
    await refreshExecutors();
  } catch (e) {
    showErrorSnackbar(e.message);
  }
}
`
