// Package hclstep loads step files written in HCL native syntax.
//
// A step file is a flat list of attributes. They are evaluated once, in
// source order, and each evaluated attribute is visible to the ones after
// it. The reserved variable module describes the step itself:
//
//	name   = "send-report"
//	config = {
//	  type   = "event"
//	  name   = name
//	  flows  = [module.package]
//	}
package hclstep
