package main

import "buddymatch_backend/internal/app"

func main() {
	app.Run()
}
