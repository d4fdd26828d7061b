package ports

// Progress reports how many source frames have been consumed.
// Reporting never influences control flow.
type Progress interface {
	// Start begins reporting. A negative total means the total is unknown.
	Start(total int64)

	// Add records n more consumed frames.
	Add(n int)

	// Finish completes the report.
	Finish()
}
