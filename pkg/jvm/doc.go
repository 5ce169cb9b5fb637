// Package jvm hosts the Java virtual machine that runs the FPGA toolkit and
// invokes its static entry points.
//
// Go cannot load a JVM in-process without cgo, so the VM is a child java
// process running a small bridge program that is embedded in the binary
// and launched in source-file mode. The bridge reads one request per line
// on stdin, calls the named static method through reflection, and writes
// one JSON response per line on stdout. Anything the toolkit prints is
// captured per call and returned in Result.Output; stderr is forwarded to
// the package logger.
//
// # Lifecycle
//
// A process hosts at most one VM:
//
//	rt, err := jvm.Start(ctx, cfg)  // second call: ErrAlreadyStarted
//	defer rt.Close()
//
//	res, err := rt.Invoke(ctx, jvm.Call{
//		Class:  "com.xilinx.rapidwright.examples.CrossingCRNodeCounter",
//		Method: "getAllPBlockCrossingCRNodeCount",
//		Args:   []jvm.Arg{jvm.StringArg("design.dcp")},
//	})
//
// Calls block until the method returns; there is no timeout. Cancelling the
// context kills the VM, since a running Java method cannot be interrupted
// from outside.
//
// # Errors
//
// Exceptions and assertion failures raised by the toolkit come back as
// *ToolkitError with the Java type, message and stack trace untouched.
// Callers are expected to pass them on rather than interpret them.
package jvm
