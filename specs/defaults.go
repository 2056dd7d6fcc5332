// Package specs holds ready-made parse schemas for well-known ISO 8583
// message sets, built from FieldParseInfo the way an application would build
// its own — nothing here is privileged or hardcoded into the core package.
package specs

import (
	"fmt"

	"github.com/avalonpay/iso8583"
)

func must(pi *iso8583.FieldParseInfo, err error) *iso8583.FieldParseInfo {
	if err != nil {
		panic(fmt.Sprintf("specs: %v", err))
	}
	return pi
}

// Default1987 returns the field 2..128 parse schema for the 1987 ISO 8583
// field dictionary (the table carried by most bank and switch
// implementations), ported field-by-field from the convention this
// package's predecessor shipped as its compiled-in default.
// The ICC data field (55) is left without a custom codec; callers that need
// EMV decoding attach one with FieldParseInfo.WithCustomCodec(iso8583.NewICCFieldCodec()).
func Default1987() map[int]*iso8583.FieldParseInfo {
	return map[int]*iso8583.FieldParseInfo{
		2:  iso8583.NewLLVARField(),           // Primary Account Number
		3:  must(iso8583.NewNumericField(6)),  // Processing Code
		4:  iso8583.NewAmountField(),          // Amount, Transaction
		5:  iso8583.NewAmountField(),          // Amount, Settlement
		6:  iso8583.NewAmountField(),          // Amount, Cardholder Billing
		7:  iso8583.NewDate10Field(),          // Transmission Date & Time
		8:  must(iso8583.NewNumericField(8)),  // Amount, Cardholder Billing Fee
		9:  must(iso8583.NewNumericField(8)),  // Conversion Rate, Settlement
		10: must(iso8583.NewNumericField(8)),  // Conversion Rate, Cardholder Billing
		11: must(iso8583.NewNumericField(6)),  // System Trace Audit Number
		12: iso8583.NewTimeField(),            // Time, Local Transaction
		13: iso8583.NewDate4Field(),           // Date, Local Transaction
		14: iso8583.NewDateExpField(),         // Date, Expiration
		15: iso8583.NewDate4Field(),           // Date, Settlement
		16: iso8583.NewDate4Field(),           // Date, Conversion
		17: iso8583.NewDate4Field(),           // Date, Capture
		18: must(iso8583.NewNumericField(4)),  // Merchant Type
		19: must(iso8583.NewNumericField(3)),  // Acquiring Institution Country Code
		20: must(iso8583.NewNumericField(3)),  // PAN Extended, Country Code
		21: must(iso8583.NewNumericField(3)),  // Forwarding Institution Country Code
		22: must(iso8583.NewNumericField(3)),  // Point of Service Entry Mode
		23: must(iso8583.NewNumericField(3)),  // Application PAN Sequence Number
		24: must(iso8583.NewNumericField(3)),  // Function Code / NII
		25: must(iso8583.NewNumericField(2)),  // Point of Service Condition Code
		26: must(iso8583.NewNumericField(2)),  // Point of Service Capture Code
		27: must(iso8583.NewNumericField(1)),  // Authorizing Identification Response Length
		28: must(iso8583.NewNumericField(9)),  // Amount, Transaction Fee
		29: must(iso8583.NewNumericField(9)),  // Amount, Settlement Fee
		30: must(iso8583.NewNumericField(9)),  // Amount, Transaction Processing Fee
		31: must(iso8583.NewNumericField(9)),  // Amount, Settlement Processing Fee
		32: iso8583.NewLLVARField(),           // Acquiring Institution Identification Code
		33: iso8583.NewLLVARField(),           // Forwarding Institution Identification Code
		34: iso8583.NewLLVARField(),           // Primary Account Number, Extended
		35: iso8583.NewLLVARField(),           // Track 2 Data
		36: iso8583.NewLLLVARField(),          // Track 3 Data
		37: must(iso8583.NewAlphaField(12)),   // Retrieval Reference Number
		38: must(iso8583.NewAlphaField(6)),    // Authorization Identification Response
		39: must(iso8583.NewAlphaField(2)),    // Response Code
		40: must(iso8583.NewAlphaField(3)),    // Service Restriction Code
		41: must(iso8583.NewAlphaField(8)),    // Card Acceptor Terminal Identification
		42: must(iso8583.NewAlphaField(15)),   // Card Acceptor Identification Code
		43: must(iso8583.NewAlphaField(40)),   // Card Acceptor Name/Location
		44: iso8583.NewLLVARField(),           // Additional Response Data
		45: iso8583.NewLLVARField(),           // Track 1 Data
		46: iso8583.NewLLLVARField(),          // Additional Data - ISO
		47: iso8583.NewLLLVARField(),          // Additional Data - National
		48: iso8583.NewLLLVARField(),          // Additional Data - Private
		49: must(iso8583.NewAlphaField(3)),    // Currency Code, Transaction
		50: must(iso8583.NewAlphaField(3)),    // Currency Code, Settlement
		51: must(iso8583.NewAlphaField(3)),    // Currency Code, Cardholder Billing
		52: must(iso8583.NewBinaryField(8)),   // PIN Data
		53: must(iso8583.NewNumericField(16)), // Security Related Control Information
		54: iso8583.NewLLLVARField(),          // Additional Amounts
		55: iso8583.NewLLLBINField(),          // ICC Data (EMV)
		56: iso8583.NewLLLVARField(),          // Reserved ISO
		57: iso8583.NewLLLVARField(),          // Reserved National
		58: iso8583.NewLLLVARField(),          // Reserved National
		59: iso8583.NewLLLVARField(),          // Reserved National
		60: iso8583.NewLLLVARField(),          // Reserved Private
		61: iso8583.NewLLLVARField(),          // Reserved Private
		62: iso8583.NewLLLVARField(),          // Reserved Private
		63: iso8583.NewLLLVARField(),          // Reserved Private
		64: must(iso8583.NewBinaryField(8)),   // Message Authentication Code

		65: must(iso8583.NewBinaryField(1)),    // Extended Bitmap
		66: must(iso8583.NewNumericField(1)),   // Settlement Code
		67: must(iso8583.NewNumericField(2)),   // Extended Payment Code
		68: must(iso8583.NewNumericField(3)),   // Receiving Institution Country Code
		69: must(iso8583.NewNumericField(3)),   // Settlement Institution Country Code
		70: must(iso8583.NewNumericField(3)),   // Network Management Information Code
		71: must(iso8583.NewNumericField(4)),   // Message Number
		72: must(iso8583.NewNumericField(4)),   // Message Number, Last
		73: must(iso8583.NewNumericField(6)),   // Date, Action
		74: must(iso8583.NewNumericField(10)),  // Credits, Number
		75: must(iso8583.NewNumericField(10)),  // Credits, Reversal Number
		76: must(iso8583.NewNumericField(10)),  // Debits, Number
		77: must(iso8583.NewNumericField(10)),  // Debits, Reversal Number
		78: must(iso8583.NewNumericField(10)),  // Transfer, Number
		79: must(iso8583.NewNumericField(10)),  // Transfer, Reversal Number
		80: must(iso8583.NewNumericField(10)),  // Inquiries, Number
		81: must(iso8583.NewNumericField(10)),  // Authorizations, Number
		82: must(iso8583.NewNumericField(12)),  // Credits, Processing Fee Amount
		83: must(iso8583.NewNumericField(12)),  // Credits, Transaction Fee Amount
		84: must(iso8583.NewNumericField(12)),  // Debits, Processing Fee Amount
		85: must(iso8583.NewNumericField(12)),  // Debits, Transaction Fee Amount
		86: must(iso8583.NewNumericField(16)),  // Credits, Amount
		87: must(iso8583.NewNumericField(16)),  // Credits, Reversal Amount
		88: must(iso8583.NewNumericField(16)),  // Debits, Amount
		89: must(iso8583.NewNumericField(16)),  // Debits, Reversal Amount
		90: must(iso8583.NewNumericField(42)),  // Original Data Elements
		91: must(iso8583.NewAlphaField(1)),     // File Update Code
		92: must(iso8583.NewAlphaField(2)),     // File Security Code
		93: must(iso8583.NewAlphaField(5)),     // Response Indicator
		94: must(iso8583.NewAlphaField(7)),     // Service Indicator
		95: must(iso8583.NewAlphaField(42)),    // Replacement Amounts
		96: must(iso8583.NewBinaryField(8)),    // Message Security Code
		97: must(iso8583.NewNumericField(17)),  // Amount, Net Settlement
		98: must(iso8583.NewAlphaField(25)),    // Payee

		99:  iso8583.NewLLVARField(),          // Settlement Institution Identification Code
		100: iso8583.NewLLVARField(),          // Receiving Institution Identification Code
		101: iso8583.NewLLVARField(),          // File Name
		102: iso8583.NewLLVARField(),          // Account Identification 1
		103: iso8583.NewLLVARField(),          // Account Identification 2
		104: iso8583.NewLLLVARField(),         // Transaction Description
		105: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		106: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		107: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		108: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		109: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		110: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		111: iso8583.NewLLLVARField(),         // Reserved for ISO Use
		112: iso8583.NewLLLVARField(),         // Reserved for National Use
		113: iso8583.NewLLLVARField(),         // Reserved for National Use
		114: iso8583.NewLLLVARField(),         // Reserved for National Use
		115: iso8583.NewLLLVARField(),         // Reserved for National Use
		116: iso8583.NewLLLVARField(),         // Reserved for National Use
		117: iso8583.NewLLLVARField(),         // Reserved for National Use
		118: iso8583.NewLLLVARField(),         // Reserved for National Use
		119: iso8583.NewLLLVARField(),         // Reserved for National Use
		120: iso8583.NewLLLVARField(),         // Reserved for Private Use
		121: iso8583.NewLLLVARField(),         // Reserved for Private Use
		122: iso8583.NewLLLVARField(),         // Reserved for Private Use
		123: iso8583.NewLLLVARField(),         // Reserved for Private Use
		124: iso8583.NewLLLVARField(),         // Reserved for Private Use
		125: iso8583.NewLLLVARField(),         // Reserved for Private Use
		126: iso8583.NewLLLVARField(),         // Reserved for Private Use
		127: iso8583.NewLLLVARField(),         // Reserved for Private Use
		128: must(iso8583.NewBinaryField(8)),  // Message Authentication Code
	}
}
