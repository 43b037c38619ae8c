package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)

const (
	// ExtensionMP3 is the extension of every saved track.
	ExtensionMP3 = ".mp3"
	// ExtensionTXT marks command line arguments that are URL list files.
	ExtensionTXT = ".txt"
)

// DownloadLogFilename is the name of the download log kept in the save directory.
const DownloadLogFilename = "logs.json"
