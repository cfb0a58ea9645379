package soap

import (
	"github.com/beevik/etree"
)

// ServerVersionNone suppresses the RequestServerVersion header directive.
const ServerVersionNone = "none"

// Impersonation identifies the account an operation acts as.
type Impersonation struct {
	// Type is the connecting SID kind: PrincipalName, SID,
	// PrimarySmtpAddress or SmtpAddress.
	Type    string
	Address string
}

// TimeZoneContext names the time zone definition requests are
// interpreted in.
type TimeZoneContext struct {
	ID   string
	Name string
}

// EnvelopeOptions carries the cross-cutting header directives. The zero
// value emits a bare header.
type EnvelopeOptions struct {
	// ServerVersion is the schema version directive. Empty or
	// ServerVersionNone omits it.
	ServerVersion string
	Impersonation *Impersonation
	TimeZone      *TimeZoneContext
}

// HeaderFunc appends caller-supplied fragments to the envelope header.
type HeaderFunc func(b *Builder, header *etree.Element) error

// BodyFunc emits the operation-specific payload into the envelope body.
type BodyFunc func(b *Builder, body *etree.Element) error

// BuildEnvelope produces the protocol envelope: a soap:Envelope root
// binding the three schema namespaces, a header carrying the built-in
// directives in their fixed wire order (server version, impersonation,
// time zone context) followed by caller fragments, and a body. Header
// and body elements are always present even when empty.
func BuildEnvelope(opts EnvelopeOptions, header HeaderFunc, body BodyFunc) (*Builder, error) {
	b := NewBuilder()
	env := b.doc.CreateElement(PrefixSoap + ":Envelope")
	env.CreateAttr("xmlns:"+PrefixSoap, NSSoap)
	env.CreateAttr("xmlns:"+PrefixMessages, NSMessages)
	env.CreateAttr("xmlns:"+PrefixTypes, NSTypes)

	hdr := env.CreateElement(PrefixSoap + ":Header")
	if v := opts.ServerVersion; v != "" && v != ServerVersionNone {
		hdr.CreateElement(PrefixTypes + ":RequestServerVersion").CreateAttr("Version", v)
	}
	if imp := opts.Impersonation; imp != nil {
		ei := hdr.CreateElement(PrefixTypes + ":ExchangeImpersonation")
		sid := ei.CreateElement(PrefixTypes + ":ConnectingSID")
		sid.CreateElement(PrefixTypes + ":" + imp.Type).SetText(imp.Address)
	}
	if tz := opts.TimeZone; tz != nil {
		tzc := hdr.CreateElement(PrefixTypes + ":TimeZoneContext")
		def := tzc.CreateElement(PrefixTypes + ":TimeZoneDefinition")
		def.CreateAttr("Id", tz.ID)
		if tz.Name != "" {
			def.CreateAttr("Name", tz.Name)
		}
	}
	if header != nil {
		if err := header(b, hdr); err != nil {
			return nil, err
		}
	}

	bd := env.CreateElement(PrefixSoap + ":Body")
	if body != nil {
		if err := body(b, bd); err != nil {
			return nil, err
		}
	}
	return b, nil
}
