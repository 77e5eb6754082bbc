package humanizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// SummaryFunc turns one decoded call into a summary.
type SummaryFunc func(ctx *DecodeContext) (*Summary, error)

// MethodSpec binds one ABI method to its summary function. Signature is the
// canonical form and is required for overloaded names; Selector, when set,
// must match the id derived from the ABI.
type MethodSpec struct {
	Name      string
	Signature string
	Selector  string
	Summary   SummaryFunc
}

// MetaRead is a zero-argument view call whose single address result is
// stored in contract metadata under Key before humanizing.
type MetaRead struct {
	Key    string
	Method string
}

// ContractModule is the dispatch table for one contract kind.
type ContractModule struct {
	Name    string
	ABI     abi.ABI
	Methods []MethodSpec
	Reads   []MetaRead
}

// Entry is one resolved selector of a module.
type Entry struct {
	Module   string
	Method   abi.Method
	Spec     MethodSpec
	Selector Selector
}

func (m ContractModule) resolve() ([]Entry, error) {
	if m.Name == "" {
		return nil, errors.New("module name is empty")
	}
	entries := make([]Entry, 0, len(m.Methods))
	seen := make(map[Selector]string, len(m.Methods))
	for _, spec := range m.Methods {
		label := spec.Signature
		if label == "" {
			label = spec.Name
		}
		method, err := m.FindMethod(spec.Name, spec.Signature)
		if err != nil {
			return nil, &ModuleError{Module: m.Name, Method: label, Err: err}
		}
		if spec.Summary == nil {
			return nil, &ModuleError{Module: m.Name, Method: label, Err: errors.New("summary function is nil")}
		}
		var sel Selector
		copy(sel[:], method.ID)
		if spec.Selector != "" {
			declared, err := ParseSelector(spec.Selector)
			if err != nil {
				return nil, &ModuleError{Module: m.Name, Method: label, Err: err}
			}
			if declared != sel {
				return nil, &ModuleError{Module: m.Name, Method: label,
					Err: fmt.Errorf("declared selector %s does not match %s of %s", declared, sel, method.Sig)}
			}
		}
		if prev, ok := seen[sel]; ok {
			return nil, &ModuleError{Module: m.Name, Method: label,
				Err: fmt.Errorf("selector %s already bound to %s", sel, prev)}
		}
		seen[sel] = label
		entries = append(entries, Entry{Module: m.Name, Method: method, Spec: spec, Selector: sel})
	}
	return entries, nil
}

// FindMethod resolves a method by canonical signature, or by name when the
// name is not overloaded.
func (m ContractModule) FindMethod(name, signature string) (abi.Method, error) {
	if signature == "" && strings.Contains(name, "(") {
		signature = name
	}
	if signature != "" {
		want := normalizeSignature(signature)
		for _, method := range m.ABI.Methods {
			if method.Sig == want {
				return method, nil
			}
		}
		return abi.Method{}, fmt.Errorf("signature %s not in abi", want)
	}
	if name == "" {
		return abi.Method{}, errors.New("method has neither name nor signature")
	}
	var (
		found abi.Method
		count int
	)
	for _, method := range m.ABI.Methods {
		if method.RawName == name {
			found = method
			count++
		}
	}
	switch count {
	case 0:
		return abi.Method{}, fmt.Errorf("method %s not in abi", name)
	case 1:
		return found, nil
	default:
		return abi.Method{}, fmt.Errorf("method %s is overloaded, use its full signature", name)
	}
}
