package hclconf

// launchBlock is the HCL shape of a stored qdb launch configuration:
//
//	launch "Launch" {
//	  program       = "${workspace}/prog.s"
//	  stop_on_entry = true
//	}
type launchBlock struct {
	Name        string `hcl:"name,label"`
	Program     string `hcl:"program"`
	Request     string `hcl:"request,optional"`
	StopOnEntry bool   `hcl:"stop_on_entry,optional"`
}

// fileConfig is the top-level structure of a *.qdb.hcl file.
type fileConfig struct {
	Launches []*launchBlock `hcl:"launch,block"`
}
