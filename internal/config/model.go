package config

// Run is the decoded `run` block. A nil field was not set in the file.
type Run struct {
	Circuit   *string `hcl:"circuit,optional"`
	Question  *string `hcl:"question,optional"`
	Presses   *int    `hcl:"presses,optional"`
	Sink      *string `hcl:"sink,optional"`
	Budget    *int    `hcl:"budget,optional"`
	Verify    *bool   `hcl:"verify,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
}
