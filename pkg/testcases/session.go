package testcases

import (
	"github.com/clapval/clapval/pkg/applog"
	"github.com/clapval/clapval/pkg/host"
	"github.com/clapval/clapval/pkg/plugin"
	"github.com/clapval/clapval/pkg/prng"
	"github.com/clapval/clapval/pkg/result"
)

// Session is the per-test-case fixture: a fresh Host and Instance, torn
// down after every test so state is never shared across test cases, per
// the error-handling design's recovery policy.
type Session struct {
	Lib      *plugin.Library
	PluginID string
	Host     *host.Host
	CHost    *host.CHost
	Instance *plugin.Instance
	PRNG     *prng.Source
}

// HostName/Vendor/URL/Version identify this validator to a plugin's
// init()-time host introspection.
const (
	HostName    = "clapval"
	HostVendor  = "clapval"
	HostURL     = "https://github.com/clapval/clapval"
	HostVersion = "0.1.0"
)

// newSession builds a Created-then-Initialized instance against lib/pluginID,
// seeding its PRNG from testName so a reported failure reproduces exactly.
func newSession(lib *plugin.Library, pluginID, testName string) (*Session, error) {
	h := host.New(pluginID, applog.Default())
	chost := host.NewCHost(h, HostName, HostVendor, HostURL, HostVersion)

	inst, err := plugin.Create(lib, pluginID, h, plugin.WrapHostPtr(chost.Ptr()))
	if err != nil {
		chost.Free()
		h.Close()
		return nil, err
	}
	if err := inst.Init(); err != nil {
		inst.Destroy()
		chost.Free()
		h.Close()
		return nil, err
	}
	return &Session{
		Lib:      lib,
		PluginID: pluginID,
		Host:     h,
		CHost:    chost,
		Instance: inst,
		PRNG:     prng.NewFromName(testName, pluginID),
	}, nil
}

// teardown tears the instance down per the recovery policy: stop
// processing if processing, deactivate, destroy; never leaves state for
// the next test case.
func (s *Session) teardown() {
	switch s.Instance.State() {
	case plugin.StateProcessing:
		s.Instance.StopProcessing()
		s.Instance.Deactivate()
	case plugin.StateActivated:
		s.Instance.Deactivate()
	}
	s.Instance.Destroy()
	s.CHost.Free()
	s.Host.Close()
}

// Run builds a fresh Session, runs fn, and guarantees teardown regardless
// of outcome. A session-construction failure is reported as a setup
// failure without invoking fn.
func Run(lib *plugin.Library, pluginID, testName string, fn func(*Session) result.Result) result.Result {
	sess, err := newSession(lib, pluginID, testName)
	if err != nil {
		return result.FromError(pluginID, testName, err)
	}
	defer sess.teardown()
	return fn(sess)
}
