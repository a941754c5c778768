// Package demo holds the example types behind "userprompt demo". Their
// Prompt and BuildForm methods live in demo_prompt.go.
package demo

import "github.com/simonhull/userprompt/prompt"

//go:generate go run github.com/simonhull/userprompt/cmd/userprompt generate --gui .

// Profile is an account profile.
//
//prompt:derive
type Profile struct {
	Name     string                   `prompt:"name" help:"shown to other users" yaml:"name"`
	Age      uint8                    `prompt:"age" yaml:"age"`
	Email    *string                  `prompt:"email,optional" yaml:"email,omitempty"`
	Password prompt.ConfirmedPassword `prompt:"password" yaml:"-"`
	Tags     []string                 `prompt:"tags" help:"free-form labels" yaml:"tags,omitempty"`
	Favorite Shape                    `prompt:"favorite shape" yaml:"favorite"`
}

// Shape is a drawable figure.
//
//prompt:enum
type Shape interface{ isShape() }

// Circle is a round Shape.
//
//prompt:help radius in metres
type Circle struct {
	Radius float64 `prompt:"radius" yaml:"radius"`
}

func (Circle) isShape() {}

type Rectangle struct {
	Width  float64 `prompt:"width" yaml:"width"`
	Height float64 `prompt:"height" yaml:"height"`
}

func (Rectangle) isShape() {}

// Named is a Shape known by name only.
//
//prompt:help a shape known by name only
type Named string

func (*Named) isShape() {}

// Point has no dimensions.
type Point struct{}

func (Point) isShape() {}
