/*

Package lorawan implements a LoRaWAN 1.0.x PHY payload dissector and the
cryptographic primitives that back it: AES-128 ECB, AES-CMAC MIC
computation, CCM*-style FRMPayload encryption, and OTAA session-key
derivation.

The package performs no I/O and holds no mutable package-level state: a
single call to Dissect turns a raw PHY PDU plus an Options value into an
immutable PhyPdu tree. Malformed or unsupported frame content never
aborts a parse; it is recorded in the returned Diagnostics slice instead.
Only a PDU too short to hold even an MHDR returns an error.

*/
package lorawan
