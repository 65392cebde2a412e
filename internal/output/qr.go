package output

import (
	"io"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// QRConfig configures terminal QR rendering.
type QRConfig struct {
	Level      qr.Level
	QuietZone  int
	HalfBlocks bool
}

// DefaultQRConfig uses low error correction so raw transactions fit.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:      qr.L,
		QuietZone:  1,
		HalfBlocks: true,
	}
}

// CheckQR fails with an invalid input error when data does not fit in a
// single QR code at cfg.Level.
func CheckQR(data string, cfg QRConfig) error {
	if _, err := qr.Encode(data, cfg.Level); err != nil {
		return sdkerr.WithCause(
			sdkerr.WithSuggestion(
				sdkerr.Newf(sdkerr.ErrInvalidInput, "data does not fit in a QR code (%d bytes)", len(data)),
				"print the hex form instead"),
			err)
	}
	return nil
}

// RenderQR draws data as a QR code when w is a terminal and does nothing
// otherwise.
func RenderQR(w io.Writer, data string, cfg QRConfig) error {
	if err := CheckQR(data, cfg); err != nil {
		return err
	}
	if !IsTerminal(w) {
		return nil
	}

	qrterminal.GenerateWithConfig(data, qrterminal.Config{
		Level:          cfg.Level,
		Writer:         w,
		QuietZone:      cfg.QuietZone,
		HalfBlocks:     cfg.HalfBlocks,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
	})
	return nil
}
