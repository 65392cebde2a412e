package cli

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vechain/vechain-sdk-go/internal/certificate"
	"github.com/vechain/vechain-sdk-go/internal/fileutil"
	"github.com/vechain/vechain-sdk-go/internal/output"
	"github.com/vechain/vechain-sdk-go/internal/secure"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	certCmd = &cobra.Command{
		Use:   "cert",
		Short: "Sign and verify certificates",
		Long: `Sign and verify identification certificates.

Certificates are YAML or JSON documents; "-" reads stdin.

Example:
  purpose: identification
  payload:
    type: text
    content: fyi
  domain: localhost
  timestamp: 1545035330
  signer: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"`,
	}

	certSignCmd = &cobra.Command{
		Use:   "sign <cert-file>",
		Short: "Sign a certificate with the signer's private key",
		Args:  cobra.ExactArgs(1),
		RunE:  runCertSign,
	}

	certVerifyCmd = &cobra.Command{
		Use:   "verify <cert-file>",
		Short: "Verify a signed certificate",
		Args:  cobra.ExactArgs(1),
		RunE:  runCertVerify,
	}

	certOut string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(certCmd)
	certCmd.AddCommand(certSignCmd, certVerifyCmd)

	certSignCmd.Flags().StringVar(&certOut, "out", "", "also write the signed certificate as JSON to this file")
}

type certView struct {
	Certificate *certificate.Certificate `json:"certificate" yaml:"certificate"`
	Encoded     string                   `json:"encoded" yaml:"encoded"`
	Verified    bool                     `json:"verified" yaml:"verified"`
}

func (v certView) String() string {
	t := output.NewTable()
	t.AddRow("purpose", v.Certificate.Purpose)
	t.AddRow("domain", v.Certificate.Domain)
	t.AddRow("timestamp", strconv.FormatInt(v.Certificate.Timestamp, 10))
	t.AddRow("signer", v.Certificate.Signer)
	t.AddRow("signature", v.Certificate.Signature)
	t.AddRow("verified", strconv.FormatBool(v.Verified))
	return strings.TrimSuffix(t.String(), "\n")
}

func loadCertificate(cmd *cobra.Command, path string) (*certificate.Certificate, error) {
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	var doc certificate.Certificate
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, sdkerr.WithCause(sdkerr.Newf(sdkerr.ErrInvalidInput, "malformed certificate document"), err)
	}
	return certificate.Of(doc)
}

func printCert(c *certificate.Certificate, verified bool) error {
	encoded, err := c.Encode()
	if err != nil {
		return err
	}
	return formatter.Print(certView{Certificate: c, Encoded: string(encoded), Verified: verified})
}

func runCertSign(cmd *cobra.Command, args []string) error {
	cert, err := loadCertificate(cmd, args[0])
	if err != nil {
		return err
	}

	key, err := promptPrivateKey("signer")
	if err != nil {
		return err
	}
	defer secure.Zero(key)

	addr, err := vcdm.AddressOfPrivateKey(key)
	if err != nil {
		return err
	}
	if !strings.EqualFold(addr.String(), cert.Signer) {
		return sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrSignatureMismatch, "private key does not belong to the certificate signer"),
			map[string]string{"signer": cert.Signer, "key address": addr.String()})
	}

	signed, err := cert.Sign(key)
	if err != nil {
		return err
	}
	logger.Named("cert").Info("signed certificate for %s", signed.Signer)

	if certOut != "" {
		data, err := json.MarshalIndent(signed, "", "  ")
		if err != nil {
			return sdkerr.WithCause(sdkerr.ErrGeneral, err)
		}
		if err := fileutil.WriteAtomic(certOut, append(data, '\n'), 0o600); err != nil {
			return err
		}
	}
	return printCert(signed, true)
}

func runCertVerify(cmd *cobra.Command, args []string) error {
	cert, err := loadCertificate(cmd, args[0])
	if err != nil {
		return err
	}
	if err := cert.Verify(); err != nil {
		return err
	}
	if formatter.IsText() {
		output.Successf(cmd.ErrOrStderr(), "certificate signed by %s", cert.Signer)
	}
	return printCert(cert, true)
}
