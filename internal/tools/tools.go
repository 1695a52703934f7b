// Package tools knows about the external binaries the pipeline shells out
// to: what they are, how to install them, and whether the installed
// versions are usable.
package tools

// Tool describes an external binary the scan depends on.
type Tool struct {
	Name       string
	Binary     string
	Install    string // install hint shown by the check command
	MinVersion string // oldest release with the flags we pass, empty = any
	Required   bool
}

// ToolStatus is the check result for one tool.
type ToolStatus struct {
	Name      string
	Installed bool
	Version   string
	Outdated  bool
}

// All returns the external tools in the order the pipeline uses them.
func All() []Tool {
	return []Tool{
		{
			Name:       "subfinder",
			Binary:     "subfinder",
			Install:    "go install github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest",
			MinVersion: "2.5.0",
			Required:   true,
		},
		{
			Name:       "shuffledns",
			Binary:     "shuffledns",
			Install:    "go install github.com/projectdiscovery/shuffledns/cmd/shuffledns@latest",
			MinVersion: "1.0.0",
			Required:   false, // only needed with dns_bruteforce
		},
		{
			Name:       "puredns",
			Binary:     "puredns",
			Install:    "go install github.com/d3mondev/puredns/v2@latest",
			MinVersion: "2.0.0",
			Required:   true,
		},
		{
			Name:       "dnsx",
			Binary:     "dnsx",
			Install:    "go install github.com/projectdiscovery/dnsx/cmd/dnsx@latest",
			MinVersion: "1.1.0",
			Required:   true,
		},
		{
			Name:     "dnsvalidator",
			Binary:   "dnsvalidator",
			Install:  "pip3 install git+https://github.com/vortexau/dnsvalidator.git",
			Required: false, // only needed with validate_resolvers_on_start
		},
		{
			Name:     "nmap",
			Binary:   "nmap",
			Install:  "apt install nmap (or brew install nmap)",
			Required: true,
		},
	}
}
