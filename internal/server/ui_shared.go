package server

const uiSharedJS = uiSharedCoreJS + uiSharedModalJS + uiSharedSnackbarJS
