package launch

// ProvideDefaults returns the canned configurations offered when the user
// has no saved configuration at all. It is a pure function: always exactly
// one entry, templated on the currently open file. The concrete file is
// bound lazily by the host at launch time, not here.
//
// The scope parameter is the workspace folder the host is asking on behalf
// of; the canned configuration does not depend on it, but the signature
// keeps room for per-folder defaults.
func ProvideDefaults(scope string) []Request {
	_ = scope
	return []Request{
		{
			Type:        DebugType,
			Name:        "Dynamic Launch",
			Request:     RequestLaunch,
			Program:     FileTemplate,
			StopOnEntry: true,
		},
	}
}
