package server

const uiAppRevealJS = `
// 0 lets the server apply the stored delay.
function selectedDelaySeconds() {
  const sel = byId('setDelay');
  const v = Number(sel && sel.value);
  if (!Number.isFinite(v) || v <= 0) return 0;
  if (state.settings && v === state.settings.delay_seconds) return 0;
  return v;
}

async function startReveal(id) {
  let snap;
  try {
    snap = await apiJSON('POST', '/api/v1/reveal', { id: id, delay_seconds: selectedDelaySeconds() });
  } catch (e) {
    showErrorSnackbar(e.message);
    return;
  }
  state.revealOpen = true;
  const overlay = byId('revealOverlay');
  wireModalCloseBehavior(overlay, closeReveal);
  openModalOverlay(overlay, '720px', 'auto');
  renderReveal(snap);
  schedulePoll();
}

function schedulePoll() {
  if (state.revealPoll != null) clearTimeout(state.revealPoll);
  state.revealPoll = setTimeout(pollReveal, 250);
}

async function pollReveal() {
  state.revealPoll = null;
  if (!state.revealOpen) return;
  try {
    const snap = await apiJSON('GET', '/api/v1/reveal');
    renderReveal(snap);
    if (snap.state === 'revealed') {
      await handleRevealed(snap);
      return;
    }
    if (snap.state === 'closed' || snap.state === 'idle') return;
  } catch (e) {
    console.error(e);
  }
  schedulePoll();
}

let revealStartedAt = 0;
let lastRevealState = '';

function renderReveal(snap) {
  if (!snap) return;
  if (snap.state !== lastRevealState && snap.state === 'showing_first_placeholder') revealStartedAt = Date.now();
  lastRevealState = snap.state;
  byId('revealTitle').textContent = snap.title || '';
  byId('revealName').textContent = (snap.record && snap.record.name) || '';
  const slots = snap.placeholders || [];
  [1, 2].forEach(i => {
    const node = byId('slot' + i);
    const slot = slots.find(s => s.index === i);
    node.classList.toggle('active', !!slot);
    node.textContent = slot ? ('Ad slot ' + slot.identifier + ' (' + slot.provider + ')') : 'Waiting';
  });
  const total = Math.max(1, Number(snap.delay_seconds || 0) * 2000);
  const elapsed = snap.state === 'revealed' ? total : Math.min(total, Date.now() - revealStartedAt);
  byId('revealProgress').style.width = Math.round((elapsed / total) * 100) + '%';
  const revealed = snap.state === 'revealed';
  byId('revealCodeBlock').classList.toggle('hidden', !revealed);
  if (revealed) {
    byId('revealCode').textContent = snap.code || '';
    const link = byId('revealLink');
    const href = (snap.record && snap.record.link) || '#';
    link.href = href;
    link.classList.toggle('hidden', href === '#');
    byId('revealNotice').textContent = snap.notice || '';
  }
}

async function handleRevealed(snap) {
  if (snap.copied) {
    showSnackbar(snap.notice);
    return;
  }
  const ok = await copyTextToClipboard(snap.code);
  const notice = ok ? 'Script copied to clipboard' : (snap.notice || 'Automatic copy failed; use Copy button');
  byId('revealNotice').textContent = notice;
  showSnackbar({ message: notice, error: !ok });
}

async function copyRevealed() {
  const code = byId('revealCode').textContent;
  let ok = await copyTextToClipboard(code);
  if (!ok) {
    try {
      const res = await apiJSON('POST', '/api/v1/reveal/copy');
      ok = !!(res && res.copied);
    } catch (_) {
      ok = false;
    }
  }
  const notice = ok ? 'Copied to clipboard' : 'Copy failed';
  byId('revealNotice').textContent = notice;
  showSnackbar({ message: notice, error: !ok });
}

async function closeReveal() {
  state.revealOpen = false;
  if (state.revealPoll != null) {
    clearTimeout(state.revealPoll);
    state.revealPoll = null;
  }
  closeModalOverlay(byId('revealOverlay'));
  try {
    await apiJSON('POST', '/api/v1/reveal/cancel');
  } catch (e) {
    console.error(e);
  }
}
`
