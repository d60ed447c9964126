package max22200

import "max22200-go/errcode"

// Validation runs before any transport activity: an invalid parameter
// fails fast with zero transactions issued.

func checkChannel(op string, ch uint8) error {
	if ch >= NumChannels {
		return &errcode.E{C: errcode.InvalidParameter, Op: op, Msg: "channel index out of range"}
	}
	return nil
}

func checkCurrent(op string, v, max uint16, what string) error {
	if v > max {
		return &errcode.E{C: errcode.InvalidParameter, Op: op, Msg: what + " out of range"}
	}
	return nil
}

func checkChannelConfig(op string, c ChannelConfig) error {
	if err := checkCurrent(op, c.HitCurrent, MaxHitCurrent, "hit current"); err != nil {
		return err
	}
	return checkCurrent(op, c.HoldCurrent, MaxHoldCurrent, "hold current")
}
