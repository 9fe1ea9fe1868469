package ast

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Visitor receives the nodes of a line during Walk.
//
// Enter is called for every node in pre-order. For tag lists and animations,
// the nested tags are entered after the container and before Exit is called
// for the container. Exit is called exactly once for every entered node.
type Visitor interface {
	Enter(Node)
	Exit(Node)
}

// VisitorFunc adapts a function to a Visitor which ignores Exit events.
type VisitorFunc func(Node)

// Enter calls f(n).
func (f VisitorFunc) Enter(n Node) { f(n) }

// Exit does nothing.
func (f VisitorFunc) Exit(Node) {}

// walkStep is an entry of Walk's work stack.
type walkStep struct {
	node Node
	exit bool // emit Exit for node instead of entering it
}

// Walk traverses a line depth-first, calling v for every chunk and tag.
//
// Walk does not recurse on the call stack; nesting of animations is handled
// with an explicit work stack, so arbitrarily deep trees are safe to walk.
func Walk(line *Line, v Visitor) {
	if line == nil || v == nil {
		return
	}
	stack := arraystack.New()
	for i := len(line.Chunks) - 1; i >= 0; i-- {
		stack.Push(walkStep{node: line.Chunks[i]})
	}
	drain(stack, v)
}

// WalkTags traverses a sequence of tags like Walk does for lines.
func WalkTags(tags []Tag, v Visitor) {
	if v == nil {
		return
	}
	stack := arraystack.New()
	for i := len(tags) - 1; i >= 0; i-- {
		stack.Push(walkStep{node: tags[i]})
	}
	drain(stack, v)
}

func drain(stack *arraystack.Stack, v Visitor) {
	for !stack.Empty() {
		top, _ := stack.Pop()
		step := top.(walkStep)
		if step.exit {
			v.Exit(step.node)
			continue
		}
		v.Enter(step.node)
		stack.Push(walkStep{node: step.node, exit: true})
		children := Children(step.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(walkStep{node: children[i]})
		}
	}
}

// Children returns the nested tags of tag lists and animations, and nil for
// every other node.
func Children(n Node) []Tag {
	switch c := n.(type) {
	case *TagList:
		return c.Tags
	case *Animation:
		return c.Tags
	}
	return nil
}

// Tags returns every tag of a line in pre-order, including tags nested
// within animations.
func Tags(line *Line) []Tag {
	var tags []Tag
	Walk(line, VisitorFunc(func(n Node) {
		if t, ok := n.(Tag); ok {
			tags = append(tags, t)
		}
	}))
	return tags
}
