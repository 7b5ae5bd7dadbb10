// Command pugorugh serves the dog matching API.
//
//	@title						Pug or Ugh API
//	@version					1.0
//	@description				Swipe through adoptable dogs, rate them and keep a per-user preference.
//	@BasePath					/api
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Send "Token <key>" as obtained from POST /user/login/.
package main

import (
	"os"

	"github.com/tbourn/pugorugh-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
