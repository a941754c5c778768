// Package userprompt derives interactive prompts and immediate-mode forms
// from Go struct and enum shapes. The runtime lives in package prompt; the
// userprompt command generates reflection-free implementations.
package userprompt

// Version is the userprompt release.
const Version = "0.3.0"
