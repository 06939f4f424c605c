// jwp-demo drives one full issue -> present -> verify cycle over a YAML
// fixture, printing each compact token and the claims a verifier recovers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/certen/jwp/internal/logging"
	"github.com/certen/jwp/internal/metrics"
	"github.com/certen/jwp/pkg/jpt"
	"github.com/certen/jwp/pkg/jwa"
	"github.com/certen/jwp/pkg/jwk"
	"github.com/certen/jwp/pkg/jwp"
)

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a YAML fixture describing the issuer and claims (required)")
		verbose     = flag.Bool("verbose", false, "enable debug-level structured logging")
		showHelp    = flag.Bool("help", false, "show help message")
	)
	flag.Parse()

	if *showHelp || *fixturePath == "" {
		flag.Usage()
		os.Exit(0)
	}

	if err := run(*fixturePath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fixturePath string, verbose bool) error {
	f, err := loadFixture(fixturePath)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(&logging.Config{Level: level, Format: "text", Output: "stderr"})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	engine := &jwp.Engine{Recorder: recorder, Logger: logger}

	alg, subtype, err := algForSubtype(f.Issuer.Subtype)
	if err != nil {
		return err
	}

	skJwk, err := jwk.Generate(subtype, f.Issuer.Kid)
	if err != nil {
		return fmt.Errorf("generate issuer key: %w", err)
	}
	pubJwk := skJwk.ToPublic()

	claimsJSON, err := f.claimsJSON()
	if err != nil {
		return fmt.Errorf("encode fixture claims: %w", err)
	}

	issued, err := jwp.NewIssuedJwpBuilder().
		WithHeader(&jwp.IssuerProtectedHeader{Typ: "JPT", Alg: alg, Kid: skJwk.Kid}).
		WithClaims(claimsJSON).
		WithJwk(skJwk).
		Build(engine)
	if err != nil {
		return fmt.Errorf("issue jwp: %w", err)
	}
	issuedCompact, err := issued.Encode()
	if err != nil {
		return fmt.Errorf("encode issued jwp: %w", err)
	}
	fmt.Printf("issued claims:   %v\n", issued.Header.Claims)
	fmt.Printf("issued jpt:      %s\n\n", issuedCompact)

	presBuilder := jwp.NewPresentedJwpBuilder(issued).WithPresentationHeader(&jwp.PresentationProtectedHeader{
		Typ:   "JPT",
		Alg:   alg.ToPresentation(),
		Kid:   skJwk.Kid,
		Aud:   f.Aud,
		Nonce: f.Nonce,
	})
	for _, name := range f.Hide {
		if err := presBuilder.SetUndisclosed(name); err != nil {
			return fmt.Errorf("hide claim %q: %w", name, err)
		}
	}
	presented, err := presBuilder.Build(engine, pubJwk)
	if err != nil {
		return fmt.Errorf("present jwp: %w", err)
	}
	presentedCompact, err := presented.Encode()
	if err != nil {
		return fmt.Errorf("encode presented jwp: %w", err)
	}
	fmt.Printf("presented jpt:   %s\n\n", presentedCompact)

	pending, err := jwp.DecodePresentedJwp(presentedCompact)
	if err != nil {
		return fmt.Errorf("decode presented jwp: %w", err)
	}
	verified, err := pending.Verify(engine, pubJwk)
	if err != nil {
		return fmt.Errorf("verify presented jwp: %w", err)
	}

	disclosed, err := disclosedClaims(verified)
	if err != nil {
		return fmt.Errorf("reconstruct disclosed claims: %w", err)
	}
	out, err := json.MarshalIndent(disclosed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal disclosed claims: %w", err)
	}
	fmt.Printf("verified, disclosed claims:\n%s\n", out)
	return nil
}

func algForSubtype(subtype string) (jwa.IssuanceAlg, jwk.Subtype, error) {
	switch jwk.Subtype(subtype) {
	case jwk.SubtypeBLS12381G2SHA256, "":
		return jwa.BBS, jwk.SubtypeBLS12381G2SHA256, nil
	case jwk.SubtypeBLS12381G2SHAKE256:
		return jwa.BBSSHAKE256, jwk.SubtypeBLS12381G2SHAKE256, nil
	default:
		return "", "", fmt.Errorf("unknown issuer subtype %q", subtype)
	}
}

// disclosedClaims rebuilds the hierarchical claim document a verifier would
// see after selective disclosure: only the claim names and values still
// tagged Disclosed.
func disclosedClaims(p *jwp.PresentedJwp) (interface{}, error) {
	claims := make(jpt.Claims, 0, len(p.Payloads))
	values := make([]interface{}, 0, len(p.Payloads))
	for i, entry := range p.Payloads {
		if entry.Disclosure != jpt.Disclosed {
			continue
		}
		claims = append(claims, p.IssuerHeader.Claims[i])
		values = append(values, entry.Value)
	}
	return jpt.ToJSON(claims, values)
}
