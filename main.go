package main

import (
	"net/http"

	"github.com/minepkg/mclaunch/cmd"
	"github.com/minepkg/mclaunch/internals/ownhttp"
)

// set by goreleaser
var (
	version = "dev"
	commit  string
)

func main() {

	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
