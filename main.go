package main

import "github.com/EO-DataHub/eodhp-resource-services/cmd"

func main() {
	cmd.Execute()
}
