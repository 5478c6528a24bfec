package api

import (
	"io/fs"
	"net/http"

	"github.com/ChipDepot/Bran/internal/assets"
	"github.com/ChipDepot/Bran/internal/types"
)

// Router builds the full ingress http.Handler, using Go 1.22+
// http.ServeMux method+pattern routing — the pack's only precedent for an
// HTTP router is stdlib ServeMux (keda's cmd/adapter/main.go), so no
// third-party router is pulled in here.
func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /apps/{app}", a.registerObjective)
	mux.HandleFunc("PUT /apps/{app}", a.updateObjective)
	mux.HandleFunc("GET /apps/{app}", a.getApplication)

	mux.HandleFunc("POST /directives/addition/{app}/{loc}", a.upsertDirective(types.DirectiveAddition))
	mux.HandleFunc("POST /directives/reconfig/{app}/{loc}", a.upsertDirective(types.DirectiveReconfig))
	mux.HandleFunc("POST /directives/restart/{app}/{loc}", a.upsertDirective(types.DirectiveRestart))
	mux.HandleFunc("GET /directives/{app}", a.getDirectives)

	mux.Handle("GET /favicon.ico", http.FileServerFS(subOrPanic(assets.Files)))

	return mux
}

// subOrPanic narrows the embedded assets filesystem to its root — embed.FS
// always succeeds here since the directory is compiled in, so a panic on
// error would only ever fire on a packaging mistake caught at build time.
func subOrPanic(f fs.FS) fs.FS {
	sub, err := fs.Sub(f, ".")
	if err != nil {
		panic(err)
	}
	return sub
}
