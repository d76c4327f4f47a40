// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
)

func main() {
	fmt.Println("pg-manager - Client State & Cache Layer")
	fmt.Println("=======================================")
	fmt.Println()
	fmt.Println("pg-manager keeps consistent in-memory projections of backend-owned")
	fmt.Println("collections (users, connections, schema metadata, saved queries,")
	fmt.Println("execution history) for a desktop Postgres administration tool.")
	fmt.Println()
	fmt.Println("Packages:")
	fmt.Println()
	fmt.Println("  pgmanager  - wire model and the Backend boundary (HTTP client included)")
	fmt.Println("  pgstate    - session store, relation caches, hierarchical schema cache,")
	fmt.Println("               filtered remote views and the tab lifecycle store")
	fmt.Println()
	fmt.Println("Typical wiring:")
	fmt.Println()
	fmt.Println("  cfg, _ := pgstate.LoadConfig(configDir)")
	fmt.Println("  stores := pgstate.ConnectHTTP(cfg)")
	fmt.Println("  stores.Session.Login(ctx, username, password)")
	fmt.Println("  stores.Connections.Load(ctx, 0)")
}
