package main

import "github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/cli"

func main() {
	cli.Execute()
}
