package main

import "github.com/oshokin/security-system/cmd/securityctl/cmd"

func main() {
	cmd.Execute()
}
