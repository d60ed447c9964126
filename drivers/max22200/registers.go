package max22200

// Register map and bit-field constants for the MAX22200 octal
// solenoid/motor driver.
//
// Every data register is a 32-bit word addressed by a one-byte register
// address. A transaction is a single 5-byte full-duplex frame: the address
// byte (bit 7 set for reads) followed by the four data bytes, MSB first.
// The device shifts the addressed register out on the same frame, so reads
// carry the value in bytes 1..4 of the response.

const (
	// NumChannels is the fixed channel count of the device.
	NumChannels = 8

	// Encoded field ranges.
	MaxHitCurrent  = 0x3FF  // 10-bit
	MaxHoldCurrent = 0x3FF  // 10-bit
	MaxHitTime     = 0xFFFF // 16-bit

	// SPI clock limits. Daisy-chained buses run at the lower rate.
	MaxSPIFreqStandalone = 10_000_000
	MaxSPIFreqDaisyChain = 5_000_000
)

const (
	// --- Register addresses ---

	regStatus    = 0x00 // R: global flags + per-channel hit-phase flags
	regGlobalCfg = 0x01 // R/W
	regChEnable  = 0x02 // R/W: ONCH[7:0], bit n enables channel n
	regFault     = 0x03 // R, write-1-to-clear

	regCfgChBase    = 0x10 // +ch: drive flags + hit/hold currents
	regHitTimeBase  = 0x18 // +ch: hit time, bits 15:0
	regChStatusBase = 0x20 // +ch: R, per-channel snapshot

	// Address byte modifier for read transactions.
	readBit = 0x80

	// Address byte plus four data bytes.
	frameLen = 5
)

// STATUS (0x00) fields.
const (
	statusActiveBit = 1 << 0 // device out of power-on reset
	statusUVLOBit   = 1 << 1 // undervoltage lockout, chip-global
	statusTSDBit    = 1 << 2 // thermal shutdown, chip-global
	statusHitShift  = 8      // bits 15:8, HITP[7:0] hit-phase per channel
)

// GLOBAL_CFG (0x01) fields.
const (
	gcResetBit = 1 << 0
	gcSleepBit = 1 << 1
	gcDiagBit  = 1 << 2
	gcICSBit   = 1 << 3
	gcDaisyBit = 1 << 4
)

// CFG_CH (0x10+ch) fields.
const (
	cfgVDRBit        = 1 << 0 // 0=CDR, 1=VDR
	cfgFullBridgeBit = 1 << 1 // 0=half-bridge, 1=full-bridge
	cfgParallelBit   = 1 << 2
	cfgInvertBit     = 1 << 3 // output polarity

	cfgHoldShift = 4  // bits 13:4, HOLD[9:0]
	cfgHitShift  = 14 // bits 23:14, HIT[9:0]
	currentMask  = 0x3FF
)

// HIT_TIME_CH (0x18+ch) fields.
const hitTimeMask = 0xFFFF

// FAULT (0x03) fields: one byte per fault kind, bit n is channel n.
const (
	faultOCPShift = 24 // overcurrent
	faultOLFShift = 16 // open load
	faultDPMShift = 8  // plunger movement
	faultHHFShift = 0  // hit current not reached
)

// CH_STATUS (0x20+ch) fields.
const (
	chstEnabledBit   = 1 << 0
	chstFaultBit     = 1 << 1
	chstHitBit       = 1 << 2
	chstCurrentShift = 16 // bits 25:16, ICS[9:0]
)

func cfgChReg(ch uint8) uint8    { return regCfgChBase + ch }
func hitTimeReg(ch uint8) uint8  { return regHitTimeBase + ch }
func chStatusReg(ch uint8) uint8 { return regChStatusBase + ch }
