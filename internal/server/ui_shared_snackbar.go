package server

const uiSharedSnackbarJS = `
function ensureSnackbarStyles() {
  if (document.getElementById('__sgSnackbarStyles')) return;
  const style = document.createElement('style');
  style.id = '__sgSnackbarStyles';
  style.textContent = [
    '#sgSnackbarHost{position:fixed;right:14px;bottom:14px;z-index:2500;display:flex;flex-direction:column;gap:10px;max-width:min(480px,92vw);pointer-events:none;}',
    '.sg-snackbar{pointer-events:auto;display:flex;align-items:center;justify-content:space-between;gap:10px;background:#1d2340;color:#eef0fb;border:1px solid #3a4373;border-radius:10px;padding:10px 12px;box-shadow:0 16px 32px rgba(10,12,30,.35);}',
    '.sg-snackbar.error{background:#4a1f28;border-color:#7a3442;}',
    '.sg-snackbar-msg{font-size:13px;line-height:1.25;word-break:break-word;}',
    '.sg-snackbar-btn{font:inherit;font-size:12px;font-weight:600;padding:6px 8px;border-radius:7px;border:1px solid #6b74a8;background:transparent;color:#dfe2f5;cursor:pointer;}',
  ].join('');
  document.head.appendChild(style);
}

function snackbarHost() {
  ensureSnackbarStyles();
  let host = document.getElementById('sgSnackbarHost');
  if (host) return host;
  host = document.createElement('div');
  host.id = 'sgSnackbarHost';
  host.setAttribute('role', 'status');
  host.setAttribute('aria-live', 'polite');
  document.body.appendChild(host);
  return host;
}

function showSnackbar(opts) {
  const options = typeof opts === 'string' ? { message: opts } : (opts || {});
  const message = String(options.message || '').trim();
  if (!message) return;
  const host = snackbarHost();
  const item = document.createElement('div');
  item.className = 'sg-snackbar' + (options.error ? ' error' : '');
  const msg = document.createElement('div');
  msg.className = 'sg-snackbar-msg';
  msg.textContent = message;
  item.appendChild(msg);

  const dismissBtn = document.createElement('button');
  dismissBtn.type = 'button';
  dismissBtn.className = 'sg-snackbar-btn';
  dismissBtn.textContent = 'Dismiss';
  dismissBtn.onclick = () => {
    if (item.parentNode) item.parentNode.removeChild(item);
  };
  item.appendChild(dismissBtn);
  host.appendChild(item);

  const ttl = Math.max(1500, Number(options.timeoutMs || 4000));
  setTimeout(() => {
    if (item.parentNode) item.parentNode.removeChild(item);
  }, ttl);
}

function showErrorSnackbar(message) {
  showSnackbar({ message: message, error: true, timeoutMs: 6000 });
}
`
