package main

import "savaan_backend/internal/app"

func main() {
	app.Run()
}
