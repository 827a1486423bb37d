/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "encoding/json"
    "fmt"
    "os"

    "github.com/HamedShams/dora-pulse/internal/dora"
    "github.com/HamedShams/dora-pulse/internal/report"
    "github.com/spf13/cobra"
)

var (
    analyzeFile    string
    analyzeProject string
    analyzeOut     string
)

var analyzeCmd = &cobra.Command{
    Use:   "analyze",
    Short: "Compute DORA metrics from a saved issues export",
    Long: `Reads a JSON file of the form {"issues": [...]} (as written by a tracker
export or a previous fetch), runs the metrics engine over it and prints the
report. Issue objects may carry their fields at the top level or nested under
"fields"; both shapes are accepted.`,
    RunE: runAnalyze,
}

func init() {
    analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "path to the issues JSON export (required)")
    _ = analyzeCmd.MarkFlagRequired("file")
    analyzeCmd.Flags().StringVarP(&analyzeProject, "project", "p", "", "project label for the report header")
    analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "also write the result document to this path")
    rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
    data, err := os.ReadFile(analyzeFile)
    if err != nil { return err }

    var payload struct {
        Issues []map[string]any `json:"issues"`
    }
    if err := json.Unmarshal(data, &payload); err != nil {
        return fmt.Errorf("parse %s: %w", analyzeFile, err)
    }

    records := make([]dora.Record, 0, len(payload.Issues))
    for _, it := range payload.Issues { records = append(records, dora.Record(it)) }

    res := dora.Analyze(records)
    fmt.Fprint(cmd.OutOrStdout(), report.Render(analyzeProject, res))

    if analyzeOut != "" {
        b, err := json.MarshalIndent(res, "", "  ")
        if err != nil { return err }
        if err := os.WriteFile(analyzeOut, b, 0o644); err != nil { return err }
        fmt.Fprintf(cmd.OutOrStdout(), "\nResult written to %s\n", analyzeOut)
    }
    return nil
}
