// Package extension wires the qdb bootstrap into a host: it registers the
// configuration resolver, the dynamic configuration provider, the
// descriptor factory and the command surface against the "qdb" debug type,
// and owns the launch pipeline that connects them.
//
// The host itself is abstracted behind the Host interface; anything that
// can point at a focused document and show a message can drive the
// extension, an IDE adapter and the headless CLI alike.
package extension
