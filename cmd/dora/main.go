/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Command dora analyzes a saved issues export offline, without the service,
// its database or any tracker access.
package main

import (
    "os"

    "github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
    Use:           "dora",
    Short:         "DORA metrics analyzer",
    SilenceUsage:  true,
    SilenceErrors: false,
}

func main() {
    if err := rootCmd.Execute(); err != nil { os.Exit(1) }
}
