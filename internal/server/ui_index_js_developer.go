package server

const uiAppDeveloperJS = `
async function applyDeveloperJSON() {
  try {
    const res = await apiJSON('POST', '/api/v1/scripts/import', byId('devJSON').value, 'application/json');
    let msg = res.message + ' (' + res.count + ')';
    if (res.remaps && res.remaps.length) msg += ', ' + res.remaps.length + ' id(s) reassigned';
    showSnackbar(msg);
    await refreshScripts();
  } catch (e) {
    showErrorSnackbar(e.message);
  }
}

async function resetLocalEdits() {
  const ok = await showConfirmDialog({
    title: 'Reset local edits',
    message: 'Remove stored scripts, settings and executors?',
    okLabel: 'Reset',
  });
  if (!ok) return;
  try {
    const res = await apiJSON('POST', '/api/v1/reset');
    showSnackbar(res.message);
    await Promise.all([refreshScripts(), refreshSettings(), refreshExecutors()]);
  } catch (e) {
    showErrorSnackbar(e.message);
  }
}

async function refreshSettings() {
  const s = await apiJSON('GET', '/api/v1/settings');
  state.settings = s;
  byId('setPlaceholderA').value = s.placeholder_a || '';
  byId('setPlaceholderB').value = s.placeholder_b || '';
  byId('setProvider').value = s.provider || '';
  const sel = byId('setDelay');
  const choices = (s.delay_choices || []).slice();
  if (s.delay_seconds > 0 && !choices.includes(s.delay_seconds)) choices.push(s.delay_seconds);
  sel.innerHTML = choices.map(v =>
    '<option value="' + v + '"' + (v === s.delay_seconds ? ' selected' : '') + '>' + v + 's</option>').join('');
  sel.value = String(s.delay_seconds);
}

async function saveSettings() {
  try {
    await apiJSON('PUT', '/api/v1/settings', {
      placeholder_a: byId('setPlaceholderA').value.trim(),
      placeholder_b: byId('setPlaceholderB').value.trim(),
      provider: byId('setProvider').value.trim(),
      delay_seconds: Number(byId('setDelay').value),
    });
    showSnackbar('Settings saved');
    await refreshSettings();
  } catch (e) {
    showErrorSnackbar(e.message);
  }
}
`
