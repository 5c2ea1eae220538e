package mavlink

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"go.viam.com/attitude/logging"
	"go.viam.com/attitude/spatialmath"
)

// A Tracker keeps the most recent attitude reported by one MAVLink system.
// Feed it every frame from a gomavlib node; frames from other systems and other messages are ignored.
type Tracker struct {
	systemID uint8
	logger   logging.Logger
	clk      clock.Clock

	mu       sync.RWMutex
	attitude spatialmath.Attitude
	rates    BodyRates
	received time.Time
	// time_boot_ms of the last accepted attitude, per source system.
	bootMs map[uint8]uint32
}

// RebootThreshold is how far time_boot_ms has to jump backwards before it is taken as a reboot of the
// sending system rather than a reordered message.
const RebootThreshold = 5 * time.Second

// NewTracker returns a Tracker for the given system. A systemID of 0 accepts every system.
func NewTracker(systemID uint8, logger logging.Logger, clk clock.Clock) *Tracker {
	if logger == nil {
		logger = logging.Global().Sublogger("mavlink")
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Tracker{systemID: systemID, logger: logger, clk: clk, bootMs: map[uint8]uint32{}}
}

// HandleFrame records the attitude carried by the frame, if any, and reports whether it did.
// Frames from other systems, other messages and reordered (stale) attitudes are not recorded.
func (t *Tracker) HandleFrame(evt *gomavlib.EventFrame) bool {
	sysID := evt.Frame.GetSystemID()
	if t.systemID != 0 && sysID != t.systemID {
		return false
	}

	switch msg := evt.Frame.GetMessage().(type) {
	case *common.MessageAttitudeQuaternion:
		q := QuaternionFromAttitudeQuaternion(msg)
		if !q.IsUnit(1e-3) {
			t.logger.Debugw("attitude quaternion is not unit", "norm", q.Norm(), "time_boot_ms", msg.TimeBootMs)
		}
		return t.update(sysID, q, BodyRates{msg.Rollspeed, msg.Pitchspeed, msg.Yawspeed}, msg.TimeBootMs)
	case *common.MessageAttitude:
		return t.update(sysID, EulerFromAttitude(msg), BodyRates{msg.Rollspeed, msg.Pitchspeed, msg.Yawspeed}, msg.TimeBootMs)
	default:
		return false
	}
}

// update stores the attitude unless it is older than the last one from the same system.
// time_boot_ms only increases within one boot of one system, so a large backwards jump is a reboot.
func (t *Tracker) update(sysID uint8, a spatialmath.Attitude, rates BodyRates, bootMs uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	// ATTITUDE and ATTITUDE_QUATERNION are often both streamed; keep whichever is newest.
	if last, seen := t.bootMs[sysID]; seen && bootMs < last {
		if time.Duration(last-bootMs)*time.Millisecond <= RebootThreshold {
			t.logger.Debugw("dropping stale attitude", "system_id", sysID, "time_boot_ms", bootMs, "latest_time_boot_ms", last)
			return false
		}
		t.logger.Infow("system rebooted", "system_id", sysID, "time_boot_ms", bootMs, "latest_time_boot_ms", last)
	}
	t.attitude = a
	t.rates = rates
	t.bootMs[sysID] = bootMs
	t.received = t.clk.Now()
	return true
}

// Latest returns the most recent attitude and when it was received. ok is false until one has been seen.
func (t *Tracker) Latest() (a spatialmath.Attitude, received time.Time, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.attitude, t.received, t.attitude != nil
}

// Rates returns the body rates reported alongside the most recent attitude.
func (t *Tracker) Rates() BodyRates {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rates
}

// Age returns how long ago the most recent attitude was received.
func (t *Tracker) Age() (time.Duration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.attitude == nil {
		return 0, false
	}
	return t.clk.Since(t.received), true
}
