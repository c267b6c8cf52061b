// Package cli provides the interactive cmsadmin command-line client.
//
// It wires configuration, the local token store, the CMS API gateway, the
// router and the banner/news screens into a REPL. Typical flow: log in,
// land on the banner screen, switch tabs with "tab", and manage content
// with "upload", "list" and "delete".
//
// Key features:
//   - Login / Logout with a persistent session, and its age ("whoami")
//   - Banner upload, listing, deletion and a terminal slideshow ("play")
//   - News upload, listing, deletion, PDF inspection and download
//   - Local thumbnails of images before upload ("preview")
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
