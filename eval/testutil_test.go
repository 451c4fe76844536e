package eval

import "github.com/emberlang/ember/pkg/token"

func tokenPos() token.Position {
	return token.Position{Line: 1, Column: 1}
}
