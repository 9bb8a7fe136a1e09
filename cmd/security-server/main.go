package main

import "github.com/oshokin/security-system/cmd/security-server/cmd"

func main() {
	cmd.Execute()
}
