package domain

import "path/filepath"

const (
	// AppDirName is the name of the application directory below the XDG base directories.
	AppDirName = "paket"

	// JournalFileName is the name of the transaction journal file.
	JournalFileName = "journal"

	// LocksDirName is the name of the directory holding lock files.
	LocksDirName = "locks"

	// ReceiptsDirName is the name of the directory holding installation receipts.
	ReceiptsDirName = "receipts"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "paket.yaml"

	// InstallLockName is the name of the exclusive lock guarding installations.
	InstallLockName = "install"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// JournalPath returns the journal location inside a state directory.
func JournalPath(stateDir string) string {
	return filepath.Join(stateDir, JournalFileName)
}

// LocksPath returns the lock directory inside a state directory.
func LocksPath(stateDir string) string {
	return filepath.Join(stateDir, LocksDirName)
}

// ReceiptsPath returns the receipt directory inside a state directory.
func ReceiptsPath(stateDir string) string {
	return filepath.Join(stateDir, ReceiptsDirName)
}
