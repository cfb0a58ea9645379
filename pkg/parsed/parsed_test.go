package parsed

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
)

// node builds a single-key parsed node from alternating key/value pairs.
func node(pairs ...any) Map {
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

func sampleDocument() *Document {
	// envelope > (header, body > find_folder_response)
	header := node("header", node("elems", Seq{}))
	response := node("find_folder_response", node("response_class", "Success"))
	body := node("body", node("elems", Seq{response}))
	env := node("envelope", node("elems", Seq{header, body}))
	return NewDocument(env)
}

func TestDocument_Projections(t *testing.T) {
	d := sampleDocument()

	env, err := d.Envelope()
	if err != nil {
		t.Fatalf("Envelope failed: %v", err)
	}
	if len(env) != 2 {
		t.Fatalf("envelope has %d children, want 2", len(env))
	}

	if _, err := d.Header(); err != nil {
		t.Fatalf("Header failed: %v", err)
	}

	body, err := d.Body()
	if err != nil {
		t.Fatalf("Body failed: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("body has %d children, want 1", len(body))
	}

	resp, err := d.Response()
	if err != nil {
		t.Fatalf("Response failed: %v", err)
	}
	if len(resp) != 1 {
		t.Fatal("Response should alias Body")
	}
}

func TestDocument_MissingEnvelopeIsFatal(t *testing.T) {
	d := NewDocument(node("not_an_envelope", NewMap()))
	if _, err := d.Envelope(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := d.Body(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Body, got %v", err)
	}
}

func TestPathLookup(t *testing.T) {
	inner := node("text", "hello")
	root := node("outer", node("inner", inner))

	v, ok := PathLookup(root, "outer", "inner", "text")
	if !ok || v != "hello" {
		t.Fatalf("PathLookup = %v, %v; want hello, true", v, ok)
	}

	// Absent at every depth, never a panic.
	if _, ok := PathLookup(root, "missing"); ok {
		t.Error("expected miss on first key")
	}
	if _, ok := PathLookup(root, "outer", "missing"); ok {
		t.Error("expected miss on intermediate key")
	}
	if _, ok := PathLookup(root, "outer", "inner", "text", "deeper"); ok {
		t.Error("expected miss when walking into a scalar")
	}
	if _, ok := PathLookup(nil, "anything"); ok {
		t.Error("expected miss on nil root")
	}
}

func TestPathLookup_PresentButEmptyIsDistinguishable(t *testing.T) {
	root := node("value", "")
	v, ok := PathLookup(root, "value")
	if !ok {
		t.Fatal("present-but-empty value must be found")
	}
	if v != "" {
		t.Fatalf("value = %v, want empty string", v)
	}
}

func TestFirstMatching(t *testing.T) {
	seq := Seq{
		node("alpha", "a"),
		node("target", "first"),
		node("target", "second"),
	}

	v, ok := FirstMatching(seq, "target")
	if !ok || v != "first" {
		t.Fatalf("FirstMatching = %v, %v; want first, true", v, ok)
	}
	if _, ok := FirstMatching(seq, "missing"); ok {
		t.Error("expected miss for absent key")
	}
	if _, ok := FirstMatching(Seq{}, "target"); ok {
		t.Error("expected miss on empty sequence")
	}
	if _, ok := FirstMatching(Seq{"scalar", 42}, "target"); ok {
		t.Error("non-mapping members must be skipped, not panic")
	}
}

func TestFromDocument(t *testing.T) {
	raw := `<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"
               xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages">
  <soap:Header/>
  <soap:Body>
    <m:FindFolderResponse>
      <m:ResponseMessages>
        <m:FindFolderResponseMessage ResponseClass="Success">
          <m:ResponseCode>NoError</m:ResponseCode>
        </m:FindFolderResponseMessage>
      </m:ResponseMessages>
    </m:FindFolderResponse>
  </soap:Body>
</soap:Envelope>`

	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	d := NewDocument(FromDocument(doc))
	body, err := d.Body()
	if err != nil {
		t.Fatalf("Body failed: %v", err)
	}

	resp, ok := FirstMatching(body, "find_folder_response")
	if !ok {
		t.Fatal("expected find_folder_response under body")
	}
	messages, ok := PathLookupAny(resp, "elems")
	if !ok {
		t.Fatal("expected response children")
	}
	rm, ok := FirstMatching(messages.(Seq), "response_messages")
	if !ok {
		t.Fatal("expected response_messages")
	}
	msg, ok := FirstMatching(Elems(rm), "find_folder_response_message")
	if !ok {
		t.Fatal("expected find_folder_response_message")
	}
	if got := Attr(msg, "response_class"); got != "Success" {
		t.Errorf("response_class = %q, want Success", got)
	}
	code, ok := FirstMatching(Elems(msg), "response_code")
	if !ok || Text(code) != "NoError" {
		t.Errorf("response_code = %v, want NoError", code)
	}
}
