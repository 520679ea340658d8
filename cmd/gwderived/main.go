// Command gwderived runs the gateway-derive program logic as a standalone
// JSON-RPC service.
package main

import "github.com/civicteam/gateway-derive/internal/cli"

func main() {
	cli.Execute()
}
