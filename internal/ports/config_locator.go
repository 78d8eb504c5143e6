package ports

// ConfigLocator finds the directory holding a gs1dm config file, searching upward from startDir.
type ConfigLocator interface {
	FindRoot(startDir string) (string, error)
}
