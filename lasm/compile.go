package lasm

import "github.com/waveform-lang/icfl"

// compiler lowers a surface Node to an icfl.Node, interning a fresh
// icfl.VarId for every binder it sees (let-bindings and function
// parameters alike) so the result is trivially alpha-unique, and
// synthesizing a single Y-combinator shared by every rec binding in
// the program.
type compiler struct {
	nextID uint64
	scopes []map[Iden]icfl.VarId

	yID   icfl.VarId
	yNode *icfl.Node
	yUsed bool
}

// Compile lowers a parsed LASM program to an icfl.Node, ready for
// icfl.Eval. Name resolution happens in the same pass: a reference to
// a name with no enclosing let-binding or function parameter fails
// with ErrUnresolvedName, and a rec binding with no parameters fails
// with ErrRecursionWithoutParams.
func Compile(n *Node) (*icfl.Node, error) {
	c := &compiler{}
	c.pushScope()
	body, err := c.compileNode(n)
	c.popScope()
	if err != nil {
		return nil, err
	}
	if c.yUsed {
		body = icfl.Apply(icfl.Lambda(c.yID, body), c.yNode)
	}
	return body, nil
}

func (c *compiler) pushScope() { c.scopes = append(c.scopes, map[Iden]icfl.VarId{}) }
func (c *compiler) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *compiler) freshID() icfl.VarId {
	id := icfl.VarId(c.nextID)
	c.nextID++
	return id
}

// bindNew allocates a fresh id for name in the innermost scope,
// shadowing any outer binding of the same name.
func (c *compiler) bindNew(name Iden) icfl.VarId {
	id := c.freshID()
	c.scopes[len(c.scopes)-1][name] = id
	return id
}

// resolve looks name up from the innermost scope outward.
func (c *compiler) resolve(name Iden) (icfl.VarId, error) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if id, ok := c.scopes[i][name]; ok {
			return id, nil
		}
	}
	return 0, ErrUnresolvedName
}

// yCombinator returns (and lazily allocates) the single Y-combinator
// node shared by every rec binding in the program, bound once at the
// very outside of the compiled tree.
func (c *compiler) yCombinator() icfl.VarId {
	if !c.yUsed {
		v1 := c.freshID()
		v2 := c.freshID()
		selfApply := icfl.Lambda(v2, icfl.Apply(icfl.Variable(v1), icfl.Apply(icfl.Variable(v2), icfl.Variable(v2))))
		c.yNode = icfl.Lambda(v1, icfl.Apply(selfApply, selfApply))
		c.yID = c.freshID()
		c.yUsed = true
	}
	return c.yID
}

func (c *compiler) compileNode(n *Node) (*icfl.Node, error) {
	switch n.Kind {
	case NodeLiteral:
		return icfl.Literal(n.Value), nil
	case NodeVariable:
		id, err := c.resolve(n.Name)
		if err != nil {
			return nil, err
		}
		return icfl.Variable(id), nil
	case NodeApply:
		fn, err := c.compileNode(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := c.compileNode(n.Arg)
		if err != nil {
			return nil, err
		}
		return icfl.Apply(fn, arg), nil
	case NodeUnaryOp:
		body, err := c.compileNode(n.Operand)
		if err != nil {
			return nil, err
		}
		return icfl.Unary(n.UOp, body), nil
	case NodeBinaryOp:
		left, err := c.compileNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.compileNode(n.Right)
		if err != nil {
			return nil, err
		}
		return icfl.Binary(n.BOp, left, right), nil
	case NodeIf:
		cond, err := c.compileNode(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.compileNode(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := c.compileNode(n.Else)
		if err != nil {
			return nil, err
		}
		return icfl.If(cond, then, els), nil
	case NodeLet:
		return c.compileLet(n)
	default:
		return nil, ErrUnresolvedName
	}
}

// compileLet lowers a let block. Each binding's own name is bound
// before its value is compiled (so a rec binding's value can refer to
// itself), and becomes visible to every later sibling binding and to
// the let's body, but not to earlier siblings: the same sequencing a
// nest of right-folded applies of one-argument lambdas produces.
func (c *compiler) compileLet(n *Node) (*icfl.Node, error) {
	c.pushScope()
	defer c.popScope()

	type lowered struct {
		id    icfl.VarId
		value *icfl.Node
	}
	var chain []lowered

	for _, b := range n.Bindings {
		if b.Rec && len(b.Params) == 0 {
			return nil, ErrRecursionWithoutParams
		}
		varID := c.bindNew(b.Name)

		c.pushScope()
		paramIDs := make([]icfl.VarId, len(b.Params))
		for i, p := range b.Params {
			paramIDs[i] = c.bindNew(p)
		}
		value, err := c.compileNode(b.Value)
		c.popScope()
		if err != nil {
			return nil, err
		}

		if len(b.Params) == 0 {
			chain = append(chain, lowered{id: varID, value: value})
			continue
		}

		for i := len(paramIDs) - 1; i >= 0; i-- {
			value = icfl.Lambda(paramIDs[i], value)
		}
		if b.Rec {
			y := c.yCombinator()
			value = icfl.Apply(icfl.Variable(y), icfl.Lambda(varID, value))
		}
		chain = append(chain, lowered{id: varID, value: value})
	}

	body, err := c.compileNode(n.Body)
	if err != nil {
		return nil, err
	}

	for i := len(chain) - 1; i >= 0; i-- {
		body = icfl.Apply(icfl.Lambda(chain[i].id, body), chain[i].value)
	}
	return body, nil
}
