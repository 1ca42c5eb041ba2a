package a

import (
	"time"
	stdtime "time"
)

type fixed struct{ t time.Time }

func (f fixed) Now() time.Time { return f.t }

func bad() {
	_ = time.Now() // want `use an injected clock.Clock instead of time.Now\(\)`
}

func badUTC() {
	_ = time.Now().UTC() // want `use an injected clock.Clock instead of time.Now\(\)`
}

func badRenamed() {
	_ = stdtime.Now() // want `use an injected clock.Clock instead of time.Now\(\)`
}

func goodMethodNamedNow(f fixed) {
	_ = f.Now()
}

func goodOtherTimeFuncs() {
	_ = time.Unix(0, 0).UTC()
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	start := time.Now() //nolint:clocknow
	_ = time.Since(start)
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want `use an injected clock.Clock instead of time.Now\(\)`
}
