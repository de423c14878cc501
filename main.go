// Package main AUTOCREA deployment orchestration API
//
//	@title			AUTOCREA API
//	@version		1.0.0
//	@description	AUTOCREA deploys user projects to hosting providers and tracks every deployment through a canonical lifecycle
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://autocrea.dev/support
//	@contact.email	support@autocrea.dev
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/autocrea/autocrea/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
