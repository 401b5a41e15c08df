// cmd/main.go
package main

import (
	"venue-review-api/app"
)

// @title           Venue Review API
// @version         1.0
// @description     Venue search, reviews and photos.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:4941
// @BasePath  /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Authorization
func main() {
	app.Run()
}
