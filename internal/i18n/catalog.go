package i18n

var catalog = map[Lang]map[string]string{
	English: {
		// attack pattern names
		"double_tld":           "Double TLD Deception",
		"subdomain_brand":      "Brand in Subdomain",
		"brand_impersonation":  "Brand Impersonation",
		"hyphenated_domain":    "Hyphenated Domain",
		"excessive_subdomains": "Excessive Subdomains",
		"ip_address":           "IP Address Instead of Domain",
		"suspicious_tld":       "Suspicious TLD",
		"url_too_long":         "URL Obfuscation",
		"phishing_keyword":     "Phishing Keywords",
		"encoded_chars":        "Encoded Characters",
		"punycode":             "Punycode/Homograph Attack",
		"port_number":          "Non-Standard Port",
		"no_https":             "No HTTPS",
		"invalid_url":          "Invalid URL",

		"reason_double_tld":           "The link contains more than one extension (like .com.com), which is commonly used in phishing",
		"reason_subdomain_brand":      "A legitimate brand name appears before the actual domain - this is deceptive",
		"reason_hyphenated_domain":    "Hyphens in the domain are often used to make a fake site look like a real brand",
		"reason_excessive_subdomains": "Excessive dots suggest an attempt to hide the real domain",
		"reason_ip_address":           "Using an IP address instead of a domain name is unusual and often malicious",
		"reason_suspicious_tld":       "The domain uses a top-level domain commonly associated with spam or abuse",
		"reason_url_too_long":         "Unusually long URLs may be trying to hide malicious parts",
		"reason_phishing_keyword":     "The link contains words like login, verify or account that phishing pages use to look official",
		"reason_encoded_chars":        "Encoded characters can be used to disguise malicious URLs",
		"reason_punycode":             "The URL uses special characters that look like letters to trick you",
		"reason_port_number":          "Non-standard port numbers are rarely used by legitimate websites",
		"reason_no_https":             "The link does not use secure HTTPS - your data may not be protected",
		"reason_invalid_url":          "Invalid URL - the link could not be read as a web address",

		"explanation_malicious":      "This link is designed to look like {brand} but is actually controlled by a different domain.",
		"explanation_suspicious":     "This link shows some signs of being potentially misleading or unsafe.",
		"explanation_safe":           "This link appears to be legitimate with no obvious signs of deception.",
		"explanation_brand_fallback": "a legitimate website",

		"tip_double_tld":      "Always check the domain extension. A real site like google.com will never be google.com.com.",
		"tip_brand_subdomain": "If a link uses a brand name but does not end with the official domain, avoid clicking it.",
		"tip_ip_address":      "Legitimate websites always use domain names, not IP addresses. Be very careful.",
		"tip_general":         "When in doubt, go directly to the official website by typing the address yourself.",
		"tip_verify":          "Verify the URL by hovering over links before clicking, and look for the lock icon in your browser.",
		"tip_no_https":        "Only enter sensitive information on websites that show a padlock icon in the browser.",

		"category_phishing":   "Phishing Attack",
		"category_scam":       "Scam/Fraud",
		"category_fake_login": "Fake Login Page",
		"category_unknown":    "Unknown Threat",

		"community_warning":     "⚠️ Do not click shared links. This is for awareness only.",
		"community_no_patterns": "No obvious attack patterns detected, but always verify URLs before clicking.",

		"action_safe":       "No strong scam indicators found. Stay alert and verify anything unexpected.",
		"action_suspicious": "Be careful. Verify the sender through official channels before you act.",
		"action_high_risk":  "Do not respond or share any details. Block the sender and report it to cybercrime.gov.in or 1930.",

		"signal_no_patterns":        "No suspicious patterns detected",
		"signal_unreadable_offline": "The content could not be read offline. Try again when the scanning service is available",

		"notice_local_analysis": "The scanning service is unreachable, so this result comes from offline analysis and may be less accurate.",
		"notice_queued":         "You appear to be offline. Your submission was saved and will be sent automatically.",
		"notice_queued_memory":  "You appear to be offline. Your submission is kept only while this program runs and will be lost if it exits before the connection returns.",
		"notice_chat_offline":   "The assistant is offline, so this answer comes from the built-in safety guide.",

		"kb_double_tld": `A double TLD (like .com.com) is suspicious because real websites only have one extension.
For example, google.com is real, but google.com.com is fake.
Scammers add extra extensions to make fake URLs look more legitimate.`,
		"kb_brand_impersonation": `Brand impersonation happens when scammers put a famous company name (like Google or PayPal)
in the subdomain part of a URL. For example, google.fakesite.com is NOT a Google website -
the real domain is "fakesite.com" and Google is just a label they added to trick you.`,
		"kb_phishing_general": `Phishing is when scammers create fake websites that look like real ones to steal your information.
They might copy the design of your bank's website and trick you into entering your password.
Always check the URL carefully and type important addresses directly instead of clicking links.`,
		"kb_clicked_suspicious": `If you clicked a suspicious link:
1. Don't enter any personal information
2. Close the page immediately
3. Run a virus scan on your device
4. Change passwords if you entered any credentials
5. Monitor your accounts for unusual activity
Don't panic - if you didn't enter information, you're likely safe.`,
		"kb_safe_browsing": `Safe browsing tips:
• Type important URLs directly instead of clicking links
• Look for the padlock icon in your browser
• Check that the URL matches the official website
• Be suspicious of urgent requests for personal information
• When in doubt, contact the company directly through their official website`,
		"chat_context": `Based on the scan I performed, here's what I found:

• {reasons}

{tip}

Would you like me to explain any of these points in more detail?`,
		"chat_context_tip": "Always verify URLs before clicking. When in doubt, type the address directly.",
		"chat_default": `I'm here to help you stay safe online! You can ask me:
• Why certain URLs are suspicious
• How phishing attacks work
• What to do if you clicked a suspicious link
• Tips for safe browsing

Feel free to ask any question about online safety!`,
	},

	Hindi: {
		"double_tld":           "डबल TLD धोखा",
		"subdomain_brand":      "सबडोमेन में ब्रांड",
		"brand_impersonation":  "ब्रांड प्रतिरूपण",
		"hyphenated_domain":    "हाइफ़न वाला डोमेन",
		"excessive_subdomains": "अत्यधिक सबडोमेन",
		"ip_address":           "डोमेन के बजाय IP पता",
		"suspicious_tld":       "संदिग्ध TLD",
		"url_too_long":         "URL भ्रम",
		"phishing_keyword":     "फ़िशिंग कीवर्ड",
		"encoded_chars":        "एन्कोडेड अक्षर",
		"punycode":             "पुनीकोड/होमोग्राफ़ हमला",
		"port_number":          "गैर-मानक पोर्ट",
		"no_https":             "HTTPS नहीं",
		"invalid_url":          "अमान्य URL",

		"reason_double_tld":           "इस लिंक में एक से अधिक एक्सटेंशन (.com.com जैसे) है, जो फ़िशिंग में आम है",
		"reason_subdomain_brand":      "एक वैध ब्रांड नाम वास्तविक डोमेन से पहले दिखाई देता है - यह धोखाधड़ी है",
		"reason_hyphenated_domain":    "डोमेन में हाइफ़न का उपयोग अक्सर नकली साइट को असली ब्रांड जैसा दिखाने के लिए किया जाता है",
		"reason_excessive_subdomains": "अत्यधिक डॉट्स असली डोमेन छिपाने का प्रयास दर्शाते हैं",
		"reason_ip_address":           "डोमेन नाम के बजाय IP पता का उपयोग असामान्य और अक्सर दुर्भावनापूर्ण होता है",
		"reason_suspicious_tld":       "यह डोमेन स्पैम या दुरुपयोग से जुड़े TLD का उपयोग करता है",
		"reason_url_too_long":         "असामान्य रूप से लंबे URL दुर्भावनापूर्ण भागों को छिपाने की कोशिश कर सकते हैं",
		"reason_phishing_keyword":     "लिंक में login, verify या account जैसे शब्द हैं जिनका उपयोग फ़िशिंग पेज असली दिखने के लिए करते हैं",
		"reason_encoded_chars":        "एन्कोडेड अक्षर दुर्भावनापूर्ण URL को छिपाने के लिए उपयोग किए जा सकते हैं",
		"reason_punycode":             "URL विशेष अक्षरों का उपयोग करता है जो अक्षरों जैसे दिखते हैं",
		"reason_port_number":          "गैर-मानक पोर्ट नंबर वैध वेबसाइटों द्वारा शायद ही उपयोग किए जाते हैं",
		"reason_no_https":             "यह लिंक सुरक्षित HTTPS का उपयोग नहीं करता - आपका डेटा सुरक्षित नहीं हो सकता",
		"reason_invalid_url":          "अमान्य URL - इस लिंक को वेब पते के रूप में पढ़ा नहीं जा सका",

		"explanation_malicious":      "यह लिंक {brand} जैसा दिखने के लिए डिज़ाइन किया गया है लेकिन वास्तव में एक अलग डोमेन द्वारा नियंत्रित है।",
		"explanation_suspicious":     "यह लिंक संभावित रूप से भ्रामक या असुरक्षित होने के कुछ संकेत दिखाता है।",
		"explanation_safe":           "यह लिंक वैध प्रतीत होता है और धोखे के कोई स्पष्ट संकेत नहीं हैं।",
		"explanation_brand_fallback": "एक वैध वेबसाइट",

		"tip_double_tld":      "हमेशा डोमेन एक्सटेंशन जांचें। google.com जैसी असली साइट कभी google.com.com नहीं होगी।",
		"tip_brand_subdomain": "अगर कोई लिंक ब्रांड नाम का उपयोग करता है लेकिन आधिकारिक डोमेन पर समाप्त नहीं होता, तो क्लिक न करें।",
		"tip_ip_address":      "वैध वेबसाइटें हमेशा डोमेन नाम का उपयोग करती हैं, IP पते का नहीं। बहुत सावधान रहें।",
		"tip_general":         "संदेह होने पर, पता खुद टाइप करके सीधे आधिकारिक वेबसाइट पर जाएं।",
		"tip_verify":          "क्लिक करने से पहले लिंक पर होवर करके URL सत्यापित करें, और अपने ब्राउज़र में लॉक आइकन देखें।",
		"tip_no_https":        "संवेदनशील जानकारी केवल उन वेबसाइटों पर दर्ज करें जो ब्राउज़र में पैडलॉक आइकन दिखाती हैं।",

		"category_phishing":   "फ़िशिंग हमला",
		"category_scam":       "धोखाधड़ी",
		"category_fake_login": "नकली लॉगिन पेज",
		"category_unknown":    "अज्ञात खतरा",

		"community_warning":     "⚠️ साझा किए गए लिंक पर क्लिक न करें। यह केवल जागरूकता के लिए है।",
		"community_no_patterns": "कोई स्पष्ट हमले का पैटर्न नहीं मिला, लेकिन हमेशा क्लिक करने से पहले URL सत्यापित करें।",

		"action_safe":       "कोई मज़बूत धोखाधड़ी संकेत नहीं मिला। सतर्क रहें और किसी भी अप्रत्याशित चीज़ की पुष्टि करें।",
		"action_suspicious": "सावधान रहें। कुछ भी करने से पहले आधिकारिक माध्यम से भेजने वाले की पुष्टि करें।",
		"action_high_risk":  "जवाब न दें और कोई जानकारी साझा न करें। भेजने वाले को ब्लॉक करें और cybercrime.gov.in या 1930 पर रिपोर्ट करें।",

		"signal_no_patterns":        "कोई संदिग्ध पैटर्न नहीं मिला",
		"signal_unreadable_offline": "सामग्री ऑफ़लाइन नहीं पढ़ी जा सकी। स्कैनिंग सेवा उपलब्ध होने पर फिर से प्रयास करें",

		"notice_local_analysis": "स्कैनिंग सेवा उपलब्ध नहीं है, इसलिए यह परिणाम ऑफ़लाइन विश्लेषण से है और कम सटीक हो सकता है।",
		"notice_queued":         "आप ऑफ़लाइन लगते हैं। आपकी जानकारी सहेज ली गई है और अपने आप भेज दी जाएगी।",
		"notice_queued_memory":  "आप ऑफ़लाइन लगते हैं। आपकी जानकारी केवल इस प्रोग्राम के चलते रहने तक रखी गई है और कनेक्शन लौटने से पहले प्रोग्राम बंद होने पर खो जाएगी।",
		"notice_chat_offline":   "सहायक ऑफ़लाइन है, इसलिए यह उत्तर अंतर्निहित सुरक्षा गाइड से है।",

		"kb_double_tld": `डबल TLD (जैसे .com.com) संदिग्ध है क्योंकि असली वेबसाइटों में केवल एक एक्सटेंशन होता है।
उदाहरण के लिए, google.com असली है, लेकिन google.com.com नकली है।
स्कैमर नकली URLs को वैध दिखाने के लिए अतिरिक्त एक्सटेंशन जोड़ते हैं।`,
		"kb_phishing_general": `फ़िशिंग तब होती है जब स्कैमर आपकी जानकारी चुराने के लिए असली जैसी दिखने वाली नकली वेबसाइट बनाते हैं।
हमेशा URL को ध्यान से जांचें और लिंक पर क्लिक करने के बजाय महत्वपूर्ण पते सीधे टाइप करें।`,
		"kb_safe_browsing": `सुरक्षित ब्राउज़िंग टिप्स:
• लिंक पर क्लिक करने के बजाय महत्वपूर्ण URLs सीधे टाइप करें
• अपने ब्राउज़र में ताले का आइकन देखें
• सुनिश्चित करें कि URL आधिकारिक वेबसाइट से मेल खाता है`,
		"chat_context": `मेरे स्कैन के आधार पर, मुझे यह मिला:

• {reasons}

{tip}

क्या आप चाहते हैं कि मैं इनमें से किसी को विस्तार से समझाऊं?`,
		"chat_context_tip": "हमेशा क्लिक करने से पहले URLs सत्यापित करें।",
		"chat_default": `मैं आपको ऑनलाइन सुरक्षित रहने में मदद करने के लिए यहां हूं! आप मुझसे पूछ सकते हैं:
• कुछ URLs संदिग्ध क्यों हैं
• फ़िशिंग हमले कैसे काम करते हैं
• संदिग्ध लिंक पर क्लिक करने के बाद क्या करें

ऑनलाइन सुरक्षा के बारे में कोई भी सवाल पूछें!`,
	},

	Marathi: {
		"double_tld":           "डबल TLD फसवणूक",
		"subdomain_brand":      "सबडोमेनमध्ये ब्रँड",
		"brand_impersonation":  "ब्रँड प्रतिरूपण",
		"hyphenated_domain":    "हायफन असलेले डोमेन",
		"excessive_subdomains": "जास्त सबडोमेन",
		"ip_address":           "डोमेन ऐवजी IP पत्ता",
		"suspicious_tld":       "संशयास्पद TLD",
		"url_too_long":         "URL गोंधळ",
		"phishing_keyword":     "फिशिंग कीवर्ड",
		"encoded_chars":        "एन्कोडेड अक्षरे",
		"punycode":             "प्युनीकोड/होमोग्राफ हल्ला",
		"port_number":          "असामान्य पोर्ट",
		"no_https":             "HTTPS नाही",
		"invalid_url":          "अवैध URL",

		"reason_double_tld":           "या लिंकमध्ये एकापेक्षा जास्त एक्स्टेंशन (.com.com सारखे) आहे, जे फिशिंगमध्ये सामान्य आहे",
		"reason_subdomain_brand":      "एक वैध ब्रँड नाव वास्तविक डोमेन आधी दिसते - हे फसवणूक आहे",
		"reason_hyphenated_domain":    "बनावट साइट खऱ्या ब्रँडसारखी दिसावी म्हणून डोमेनमध्ये अनेकदा हायफन वापरले जातात",
		"reason_excessive_subdomains": "जास्त डॉट्स खरे डोमेन लपवण्याचा प्रयत्न दर्शवतात",
		"reason_ip_address":           "डोमेन नावाऐवजी IP पत्ता वापरणे असामान्य आणि बहुतेक वेळा दुर्भावनापूर्ण असते",
		"reason_suspicious_tld":       "हा डोमेन स्पॅम किंवा गैरवापराशी संबंधित TLD वापरतो",
		"reason_url_too_long":         "असामान्यपणे लांब URLs दुर्भावनापूर्ण भाग लपवण्याचा प्रयत्न करू शकतात",
		"reason_phishing_keyword":     "लिंकमध्ये login, verify किंवा account सारखे शब्द आहेत जे फिशिंग पेज खरे दिसण्यासाठी वापरतात",
		"reason_encoded_chars":        "एन्कोडेड अक्षरे दुर्भावनापूर्ण URLs वेष बदलण्यासाठी वापरली जाऊ शकतात",
		"reason_punycode":             "URL विशेष अक्षरे वापरतो जी अक्षरांसारखी दिसतात",
		"reason_port_number":          "असामान्य पोर्ट नंबर वैध वेबसाइट्स क्वचितच वापरतात",
		"reason_no_https":             "हा लिंक सुरक्षित HTTPS वापरत नाही - तुमचा डेटा सुरक्षित नसू शकतो",
		"reason_invalid_url":          "अवैध URL - हा लिंक वेब पत्ता म्हणून वाचता आला नाही",

		"explanation_malicious":      "हा लिंक {brand} सारखा दिसण्यासाठी डिझाइन केला आहे पण प्रत्यक्षात वेगळ्या डोमेनद्वारे नियंत्रित आहे।",
		"explanation_suspicious":     "हा लिंक संभाव्य भ्रामक किंवा असुरक्षित असल्याची काही चिन्हे दर्शवतो।",
		"explanation_safe":           "हा लिंक वैध दिसतो आणि फसवणुकीची कोणतीही स्पष्ट चिन्हे नाहीत।",
		"explanation_brand_fallback": "एक वैध वेबसाइट",

		"tip_double_tld":      "नेहमी डोमेन एक्स्टेंशन तपासा. google.com सारखी खरी साइट कधीही google.com.com नसेल।",
		"tip_brand_subdomain": "जर एखादा लिंक ब्रँड नाव वापरतो पण अधिकृत डोमेनवर संपत नाही, तर क्लिक करू नका।",
		"tip_ip_address":      "वैध वेबसाइट्स नेहमी डोमेन नाव वापरतात, IP पत्ते नाही. खूप सावध रहा।",
		"tip_general":         "शंका असल्यास, पत्ता स्वतः टाइप करून थेट अधिकृत वेबसाइटवर जा।",
		"tip_verify":          "क्लिक करण्यापूर्वी लिंकवर होवर करून URL सत्यापित करा, आणि तुमच्या ब्राउझरमध्ये लॉक आयकॉन शोधा।",
		"tip_no_https":        "संवेदनशील माहिती फक्त त्या वेबसाइट्सवर प्रविष्ट करा ज्या ब्राउझरमध्ये पॅडलॉक आयकॉन दाखवतात।",

		"category_phishing":   "फिशिंग हल्ला",
		"category_scam":       "फसवणूक",
		"category_fake_login": "बनावट लॉगिन पेज",
		"category_unknown":    "अज्ञात धोका",

		"community_warning":     "⚠️ शेअर केलेल्या लिंकवर क्लिक करू नका. हे फक्त जागरूकतेसाठी आहे.",
		"community_no_patterns": "कोणतेही स्पष्ट हल्ला पॅटर्न आढळले नाहीत, परंतु नेहमी क्लिक करण्यापूर्वी URLs सत्यापित करा.",

		"action_safe":       "फसवणुकीची ठळक चिन्हे आढळली नाहीत. सावध रहा आणि अनपेक्षित गोष्टींची खात्री करा.",
		"action_suspicious": "काळजी घ्या. काहीही करण्यापूर्वी अधिकृत मार्गाने पाठवणाऱ्याची खात्री करा.",
		"action_high_risk":  "उत्तर देऊ नका आणि कोणतीही माहिती शेअर करू नका. पाठवणाऱ्याला ब्लॉक करा आणि cybercrime.gov.in किंवा 1930 वर तक्रार करा.",

		"signal_no_patterns":        "कोणतेही संशयास्पद पॅटर्न आढळले नाहीत",
		"signal_unreadable_offline": "सामग्री ऑफलाइन वाचता आली नाही. स्कॅनिंग सेवा उपलब्ध झाल्यावर पुन्हा प्रयत्न करा",

		"notice_local_analysis": "स्कॅनिंग सेवा उपलब्ध नाही, त्यामुळे हा निकाल ऑफलाइन विश्लेषणातून आहे आणि कमी अचूक असू शकतो.",
		"notice_queued":         "तुम्ही ऑफलाइन दिसत आहात. तुमची माहिती जतन केली आहे आणि आपोआप पाठवली जाईल.",
		"notice_queued_memory":  "तुम्ही ऑफलाइन दिसत आहात. तुमची माहिती फक्त हा प्रोग्राम चालू असेपर्यंत ठेवली आहे आणि कनेक्शन परत येण्यापूर्वी प्रोग्राम बंद झाल्यास हरवेल.",
		"notice_chat_offline":   "सहाय्यक ऑफलाइन आहे, त्यामुळे हे उत्तर अंगभूत सुरक्षा मार्गदर्शकातून आहे.",

		"kb_double_tld": `डबल TLD (जसे .com.com) संशयास्पद आहे कारण खऱ्या वेबसाइट्सला फक्त एक एक्स्टेंशन असते.
उदाहरणार्थ, google.com खरे आहे, पण google.com.com बनावट आहे.`,
		"kb_phishing_general": `फिशिंग म्हणजे जेव्हा स्कॅमर्स तुमची माहिती चोरण्यासाठी खऱ्यासारख्या दिसणाऱ्या बनावट वेबसाइट्स तयार करतात.
नेहमी URL काळजीपूर्वक तपासा आणि लिंकवर क्लिक करण्याऐवजी महत्त्वाचे पत्ते थेट टाइप करा.`,
		"chat_default": `मी तुम्हाला ऑनलाइन सुरक्षित राहण्यात मदत करण्यासाठी येथे आहे! तुम्ही मला विचारू शकता:
• काही URLs संशयास्पद का आहेत
• फिशिंग हल्ले कसे काम करतात

ऑनलाइन सुरक्षिततेबद्दल कोणताही प्रश्न विचारा!`,
	},
}
