package descriptorloader

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

// typeExpression is a type written inline, e.g. "jet.Map<in K, *>?".
type typeExpression struct {
	constructor string
	nullable    bool
	arguments   []projectionExpression
}

type projectionExpression struct {
	kind descriptor.ProjectionKind
	// nil for star projections
	typ *typeExpression
}

func parseTypeExpression(text string) (*typeExpression, error) {
	p := typeExpressionParser{input: text}
	expression, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return expression, nil
}

type typeExpressionParser struct {
	input string
	pos   int
}

func (p *typeExpressionParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "type %q at %d", p.input, p.pos)
}

func (p *typeExpressionParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeExpressionParser) peek() byte {
	p.skipSpace()
	if p.pos == len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeExpressionParser) name() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune("<>,?* ", rune(p.input[p.pos])) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *typeExpressionParser) parseType() (*typeExpression, error) {
	constructor := p.name()
	if constructor == "" {
		return nil, p.errorf("type name expected")
	}
	expression := &typeExpression{constructor: constructor}
	if p.peek() == '<' {
		p.pos++
		for {
			argument, err := p.parseProjection()
			if err != nil {
				return nil, err
			}
			expression.arguments = append(expression.arguments, argument)
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return nil, p.errorf("',' or '>' expected")
			}
			break
		}
	}
	if p.peek() == '?' {
		p.pos++
		expression.nullable = true
	}
	return expression, nil
}

func (p *typeExpressionParser) parseProjection() (projectionExpression, error) {
	if p.peek() == '*' {
		p.pos++
		return projectionExpression{kind: descriptor.ProjectionKindStar}, nil
	}
	kind := descriptor.ProjectionKindInvariant
	for _, variance := range []descriptor.ProjectionKind{descriptor.ProjectionKindIn, descriptor.ProjectionKindOut} {
		prefix := string(variance) + " "
		if strings.HasPrefix(p.input[p.pos:], prefix) {
			p.pos += len(prefix)
			kind = variance
			break
		}
	}
	typ, err := p.parseType()
	if err != nil {
		return projectionExpression{}, err
	}
	return projectionExpression{kind: kind, typ: typ}, nil
}
