// Package logtail reads the tail of shopfront's JSON log file and formats
// entries for the terminal. It backs the logs subcommand.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//	for _, line := range lines {
//		fmt.Println(logtail.Format(line))
//	}
//
// Read keeps a ring buffer of the last n lines so large files are scanned once
// without being held in memory. Format decodes zap's JSON encoding (ts, level,
// logger and msg, then structured fields sorted by key) and colors the level
// with lipgloss. Lines that are not JSON are printed unchanged.
package logtail
