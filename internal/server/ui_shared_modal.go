package server

const uiSharedModalJS = `
const sgModalCSS = ` + "`" + `
.sg-modal-overlay{position:fixed;inset:0;background:rgba(12,16,28,.55);display:none;align-items:center;justify-content:center;z-index:2000;padding:12px;}
.sg-modal{--sg-modal-width:720px;--sg-modal-height:auto;width:var(--sg-modal-width);height:var(--sg-modal-height);max-width:96vw;max-height:92vh;background:#fff;border:1px solid var(--line);border-radius:12px;box-shadow:0 24px 56px rgba(15,20,40,.28);display:grid;grid-template-rows:auto 1fr;overflow:hidden;}
.sg-modal-head{display:flex;align-items:center;justify-content:space-between;gap:8px;padding:12px;border-bottom:1px solid var(--line);background:#f7f8fc;}
.sg-modal-title{font-size:18px;font-weight:700;}
.sg-modal-body{padding:12px;overflow:auto;min-height:0;}
` + "`" + `;

// Open overlays, topmost last. Escape only ever closes the topmost one.
const sgModalStack = [];

function ensureModalBaseStyles() {
  if (document.getElementById('__sgModalBaseStyles')) return;
  const style = document.createElement('style');
  style.id = '__sgModalBaseStyles';
  style.textContent = sgModalCSS;
  document.head.appendChild(style);
}

function requestModalClose(overlay) {
  if (!overlay) return;
  if (typeof overlay.__sgOnClose === 'function') overlay.__sgOnClose();
  else closeModalOverlay(overlay);
}

document.addEventListener('keydown', (ev) => {
  if (ev.key === 'Escape' && sgModalStack.length) requestModalClose(sgModalStack[sgModalStack.length - 1]);
});

function openModalOverlay(overlay, width, height) {
  if (!overlay) return;
  ensureModalBaseStyles();
  const panel = overlay.querySelector('.sg-modal');
  if (panel && width) panel.style.setProperty('--sg-modal-width', width);
  if (panel && height) panel.style.setProperty('--sg-modal-height', height);
  overlay.style.display = 'flex';
  overlay.setAttribute('aria-hidden', 'false');
  if (!sgModalStack.includes(overlay)) sgModalStack.push(overlay);
}

function closeModalOverlay(overlay) {
  if (!overlay) return;
  overlay.style.display = 'none';
  overlay.setAttribute('aria-hidden', 'true');
  const i = sgModalStack.indexOf(overlay);
  if (i >= 0) sgModalStack.splice(i, 1);
}

// A backdrop click counts only when the press started on the backdrop too;
// dragging a code selection out of the dialog must not close it.
function wireModalCloseBehavior(overlay, onClose) {
  if (!overlay) return;
  overlay.__sgOnClose = typeof onClose === 'function' ? onClose : null;
  if (overlay.__sgWired) return;
  overlay.__sgWired = true;
  let pressedBackdrop = false;
  overlay.addEventListener('pointerdown', (ev) => { pressedBackdrop = ev.target === overlay; });
  overlay.addEventListener('click', (ev) => {
    const fromBackdrop = pressedBackdrop && ev.target === overlay;
    pressedBackdrop = false;
    if (fromBackdrop) requestModalClose(overlay);
  });
}

function confirmOverlay() {
  let overlay = document.getElementById('__sgConfirmOverlay');
  if (overlay) return overlay;
  overlay = document.createElement('div');
  overlay.id = '__sgConfirmOverlay';
  overlay.className = 'sg-modal-overlay';
  overlay.setAttribute('aria-hidden', 'true');
  overlay.innerHTML =
    '<div class="sg-modal" role="dialog" aria-modal="true">' +
    '<div class="sg-modal-head"><div class="sg-modal-title"></div></div>' +
    '<div class="sg-modal-body"><p class="sg-confirm-message"></p>' +
    '<div class="row" style="justify-content:flex-end;">' +
    '<button type="button" class="secondary" data-answer="no">Cancel</button>' +
    '<button type="button" data-answer="yes">OK</button>' +
    '</div></div></div>';
  document.body.appendChild(overlay);
  return overlay;
}

// showConfirmDialog resolves true only for the OK button. A new dialog
// answers a still-open one with false.
function showConfirmDialog(opts) {
  const o = opts || {};
  const message = String(o.message || '').trim();
  if (!message) return Promise.resolve(false);
  const overlay = confirmOverlay();
  if (typeof overlay.__sgPending === 'function') overlay.__sgPending(false);

  overlay.querySelector('.sg-modal-title').textContent = String(o.title || 'Confirm');
  overlay.querySelector('.sg-confirm-message').textContent = message;
  const okBtn = overlay.querySelector('[data-answer="yes"]');
  okBtn.textContent = String(o.okLabel || 'OK');

  return new Promise((resolve) => {
    const finish = (answer) => {
      if (overlay.__sgPending !== finish) return;
      overlay.__sgPending = null;
      closeModalOverlay(overlay);
      resolve(answer);
    };
    overlay.__sgPending = finish;
    overlay.onclick = (ev) => {
      const btn = ev.target.closest('[data-answer]');
      if (btn) finish(btn.dataset.answer === 'yes');
    };
    wireModalCloseBehavior(overlay, () => finish(false));
    openModalOverlay(overlay, '460px', 'auto');
    setTimeout(() => okBtn.focus(), 0);
  });
}
`
