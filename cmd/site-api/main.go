package main

import "context"

func main() {
	app := mustBootstrapSiteAPI()
	defer app.Close()

	if err := app.Run(); err != nil && err != context.Canceled {
		panic(err)
	}
}
