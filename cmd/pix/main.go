// pix - photo palettes and related photos
//
// pix extracts styling-ready colour palettes from photos and finds related
// photos on Unsplash.
//
// Copyright (c) 2026 gitkarasune
// Licensed under the MIT License
package main

import "github.com/gitkarasune/pix/internal/cli"

func main() {
	cli.Execute()
}
