package minecraft

// NativesKey returns the classifier key holding the natives for the given GOOS value.
// Only windows and linux are mapped, every other platform gets an empty string
func NativesKey(goos string) string {
	switch goos {
	case "windows":
		return "natives-windows"
	case "linux":
		return "natives-linux"
	default:
		return ""
	}
}
