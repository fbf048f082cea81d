/*
File    : volsung/nodes/user.go
*/
package nodes

import "github.com/volsung-lang/volsung/node"

// UserCallback is a host-supplied transfer function, the Go analogue of
// the original's function-pointer-plus-user_data callback.
type UserCallback func(in, out []float64)

// User wraps a host callback as a graph node with fixed I/O arity. It is
// created directly by the program package's CreateUserObject (mirroring
// Program::create_user_object), not looked up through Catalog, since its
// behavior isn't nameable from source text.
type User struct {
	node.Base
	callback UserCallback
}

// NewUser constructs a User node around a host callback.
func NewUser(inputs, outputs int, callback UserCallback) *User {
	return &User{Base: node.Base{NumInputs: inputs, NumOutputs: outputs}, callback: callback}
}

func (u *User) Process(in, out []float64) {
	if u.callback != nil {
		u.callback(in, out)
	}
}
