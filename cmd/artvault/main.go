// Package main starts the application.
package main

import "github.com/artvault/artvault/pkg/cmd"

//	@title			ArtVault API
//	@version		1.0
//	@description	ArtVault is a personal vault for artworks, gallery collections and project journals, with image storage and a background orphan sweep.

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
