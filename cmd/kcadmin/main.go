// Command kcadmin drives the identity provider's admin API from a shell:
// fetch an admin token, create users, check for duplicates and derive roles.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newClientFromEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
