package interp

import (
	"context"

	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

// execBlock runs stmts in order, checking for cancellation at each
// statement boundary — one of the cooperative suspension points of
// spec.md §5 ("a running program yields only at statement tops, at
// INPUT, and inside builtin calls that themselves await the host").
func (m *Machine) execBlock(ctx context.Context, stmts []lang.Stmt) error {
	for _, st := range stmts {
		if err := m.checkCancelled(ctx, st.Position()); err != nil {
			return err
		}
		if err := m.execStmt(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) execStmt(ctx context.Context, st lang.Stmt) error {
	switch s := st.(type) {
	case *lang.EndStmt:
		return nil
	case *lang.DimStmt:
		return m.Sym.Declare(s.Name, s.Type, s.Position())
	case *lang.AssignStmt:
		val, err := m.eval(ctx, s.Value)
		if err != nil {
			return err
		}
		return m.Sym.Set(s.Target, val, s.Position())
	case *lang.CallStmt:
		return m.execCall(ctx, s)
	case *lang.IfStmt:
		return m.execIf(ctx, s)
	case *lang.WhileStmt:
		return m.execWhile(ctx, s)
	case *lang.ForStmt:
		return m.execFor(ctx, s)
	default:
		return langerr.New(langerr.Runtime, st.Position(), "unsupported statement")
	}
}

func (m *Machine) execCall(ctx context.Context, s *lang.CallStmt) error {
	cmd, ok := m.Reg.Command(s.Name)
	if !ok {
		if _, isFn := m.Reg.Function(s.Name); isFn {
			return langerr.New(langerr.Name, s.Position(), "%s is a function, not a command", s.Name).WithCommand(s.Name)
		}
		return langerr.New(langerr.Name, s.Position(), "unknown command %s", s.Name)
	}
	if err := m.pushLoop(s.Position()); err != nil {
		return err
	}
	defer m.popLoop()
	if err := cmd.Exec(ctx, m, s.Args, s.Position()); err != nil {
		if le, ok := err.(*langerr.Error); ok && le.Command == "" {
			le.WithCommand(s.Name)
		}
		return err
	}
	return nil
}

func (m *Machine) execIf(ctx context.Context, s *lang.IfStmt) error {
	for _, b := range s.Branches {
		cond, err := m.eval(ctx, b.Cond)
		if err != nil {
			return err
		}
		if cond.Type != lang.BooleanType {
			return langerr.New(langerr.Type, b.Cond.Position(), "IF condition must be BOOLEAN, found %s", cond.Type)
		}
		if cond.Bool {
			return m.execBlock(ctx, b.Body)
		}
	}
	if s.Else != nil {
		return m.execBlock(ctx, s.Else)
	}
	return nil
}

func (m *Machine) execWhile(ctx context.Context, s *lang.WhileStmt) error {
	for {
		if err := m.checkCancelled(ctx, s.Position()); err != nil {
			return err
		}
		cond, err := m.eval(ctx, s.Cond)
		if err != nil {
			return err
		}
		if cond.Type != lang.BooleanType {
			return langerr.New(langerr.Type, s.Cond.Position(), "WHILE condition must be BOOLEAN, found %s", cond.Type)
		}
		if !cond.Bool {
			return nil
		}
		if err := m.execBlock(ctx, s.Body); err != nil {
			return err
		}
	}
}

// execFor runs a FOR/NEXT block. The control variable's type is the
// numeric type of start (spec.md §4.4): INTEGER bounds step and compare
// as two's-complement integers, DOUBLE bounds step and compare as
// floats, with the (always integer-literal) STEP widened to float64.
func (m *Machine) execFor(ctx context.Context, s *lang.ForStmt) error {
	startVal, err := m.eval(ctx, s.Start)
	if err != nil {
		return err
	}
	endVal, err := m.eval(ctx, s.End)
	if err != nil {
		return err
	}
	switch startVal.Type {
	case lang.IntegerType:
		if endVal.Type != lang.IntegerType {
			return langerr.New(langerr.Type, s.Position(), "FOR bounds must share a type, found INTEGER and %s", endVal.Type)
		}
		return m.execForInt(ctx, s, startVal.Int, endVal.Int)
	case lang.DoubleType:
		if endVal.Type != lang.DoubleType {
			return langerr.New(langerr.Type, s.Position(), "FOR bounds must share a type, found DOUBLE and %s", endVal.Type)
		}
		return m.execForDouble(ctx, s, startVal.Double, endVal.Double)
	default:
		return langerr.New(langerr.Type, s.Position(), "FOR bounds must be INTEGER or DOUBLE, found %s", startVal.Type)
	}
}

func (m *Machine) execForInt(ctx context.Context, s *lang.ForStmt, start, end int32) error {
	if err := m.Sym.Set(s.Var, lang.IntValue(start), s.Position()); err != nil {
		return err
	}
	for {
		if err := m.checkCancelled(ctx, s.Position()); err != nil {
			return err
		}
		cur, err := m.Sym.Get(s.Var, s.Position())
		if err != nil {
			return err
		}
		if s.Step > 0 && cur.Int > end {
			return nil
		}
		if s.Step < 0 && cur.Int < end {
			return nil
		}
		if err := m.execBlock(ctx, s.Body); err != nil {
			return err
		}
		cur, err = m.Sym.Get(s.Var, s.Position())
		if err != nil {
			return err
		}
		next, err := intArith(lang.Add, cur.Int, s.Step, s.Position())
		if err != nil {
			return err
		}
		if err := m.Sym.Set(s.Var, next, s.Position()); err != nil {
			return err
		}
	}
}

func (m *Machine) execForDouble(ctx context.Context, s *lang.ForStmt, start, end float64) error {
	step := float64(s.Step)
	if err := m.Sym.Set(s.Var, lang.DoubleValue(start), s.Position()); err != nil {
		return err
	}
	for {
		if err := m.checkCancelled(ctx, s.Position()); err != nil {
			return err
		}
		cur, err := m.Sym.Get(s.Var, s.Position())
		if err != nil {
			return err
		}
		if step > 0 && cur.Double > end {
			return nil
		}
		if step < 0 && cur.Double < end {
			return nil
		}
		if err := m.execBlock(ctx, s.Body); err != nil {
			return err
		}
		cur, err = m.Sym.Get(s.Var, s.Position())
		if err != nil {
			return err
		}
		if err := m.Sym.Set(s.Var, lang.DoubleValue(cur.Double+step), s.Position()); err != nil {
			return err
		}
	}
}

func (m *Machine) pushLoop(pos langerr.Position) error {
	m.loopDepth++
	if m.loopDepth > maxLoopDepth {
		m.loopDepth--
		return langerr.New(langerr.Runtime, pos, "call nesting too deep")
	}
	return nil
}

func (m *Machine) popLoop() {
	m.loopDepth--
}

// eval evaluates an expression against the Machine's current variable
// state.
func (m *Machine) eval(ctx context.Context, e lang.Expr) (lang.Value, error) {
	switch n := e.(type) {
	case *lang.LiteralExpr:
		return n.Value, nil
	case *lang.VarRefExpr:
		return m.Sym.Get(n.Ref, n.Position())
	case *lang.UnaryExpr:
		v, err := m.eval(ctx, n.Operand)
		if err != nil {
			return lang.Value{}, err
		}
		switch n.Op {
		case lang.Neg:
			return Negate(v, n.Position())
		case lang.LogicalNot:
			return LogicalNot(v, n.Position())
		}
	case *lang.BinaryExpr:
		return m.evalBinary(ctx, n)
	case *lang.CallExpr:
		return m.evalCall(ctx, n)
	}
	return lang.Value{}, langerr.New(langerr.Runtime, e.Position(), "unsupported expression")
}

func (m *Machine) evalBinary(ctx context.Context, n *lang.BinaryExpr) (lang.Value, error) {
	l, err := m.eval(ctx, n.Left)
	if err != nil {
		return lang.Value{}, err
	}
	if n.Op == lang.Add && l.Type == lang.StringType {
		r, err := m.eval(ctx, n.Right)
		if err != nil {
			return lang.Value{}, err
		}
		if r.Type != lang.StringType {
			return lang.Value{}, typeMismatch(n.Position(), "+", l.Type, r.Type)
		}
		return lang.StrValue(l.Str + r.Str), nil
	}
	r, err := m.eval(ctx, n.Right)
	if err != nil {
		return lang.Value{}, err
	}
	switch n.Op {
	case lang.Add, lang.Sub, lang.Mul, lang.Div, lang.Mod:
		return BinaryArith(n.Op, l, r, n.Position())
	case lang.Eq, lang.Ne, lang.Lt, lang.Le, lang.Gt, lang.Ge:
		return Compare(n.Op, l, r, n.Position())
	case lang.LogicalAnd, lang.LogicalOr, lang.LogicalXor:
		return BinaryLogical(n.Op, l, r, n.Position())
	default:
		return lang.Value{}, langerr.New(langerr.Runtime, n.Position(), "unsupported operator")
	}
}

func (m *Machine) evalCall(ctx context.Context, n *lang.CallExpr) (lang.Value, error) {
	fn, ok := m.Reg.Function(n.Name)
	if !ok {
		if _, isCmd := m.Reg.Command(n.Name); isCmd {
			return lang.Value{}, langerr.New(langerr.Name, n.Position(), "%s is a command, not a function", n.Name).WithCommand(n.Name)
		}
		return lang.Value{}, langerr.New(langerr.Name, n.Position(), "unknown function %s", n.Name)
	}
	args := make([]lang.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := m.eval(ctx, a)
		if err != nil {
			return lang.Value{}, err
		}
		args[i] = v
	}
	if err := m.pushLoop(n.Position()); err != nil {
		return lang.Value{}, err
	}
	defer m.popLoop()
	v, err := fn.Call(ctx, m, args, n.Position())
	if err != nil {
		if le, ok := err.(*langerr.Error); ok && le.Command == "" {
			le.WithCommand(n.Name)
		}
		return lang.Value{}, err
	}
	return v, nil
}
