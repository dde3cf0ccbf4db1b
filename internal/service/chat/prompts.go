package chat

const systemPrompt = `You are a helpful travel package assistant specializing in sports tourism.
You help users find and book:
1. Sports event tickets
2. Flights to event locations
3. Hotel accommodations
4. Local activities and tours
5. Complete travel packages

Please provide specific, relevant information and always maintain a professional, friendly tone.
If you don't have specific information about prices or availability,
suggest that the user contact customer service for the most up-to-date details.`

const extractLocationPrompt = "Extract the location from this message, return only the location name: "

const (
	greetingReply = "Hello! I'm your FanZone assistant. How can I help you today? I can help you find packages for matches, flights, hotels, or activities."

	helpReply = `I can help you with:
1. Finding match tickets
2. Booking flights
3. Finding hotels
4. Discovering local activities
5. Finding package deals
6. Creating custom itineraries

Just let me know what you're interested in!`

	fallbackReply = "I'm not sure I understand. Would you like help with booking match tickets, flights, hotels, or activities? Or would you like to see our package deals?"

	apologyReply = "I apologize, but I encountered an error. Please try again or contact customer service for assistance."

	askLocationReply          = "Could you please specify which location you're interested in?"
	askLocationMoreReply      = "Could you please specify which location you're interested in? I can then show you more hotel options in that area."
	askLocationPackageReply   = "Could you please specify which location you're interested in for the package?"
	hotelFollowUp             = "Would you like to know more about any of these hotels, or should I search for other options?"
	packageFollowUp           = "Would you like to book this package or would you like me to suggest alternatives?"
	incompletePackageFollowUp = "\nWould you like me to search for additional options to complete the package?"

	noFlightsReply    = "I don't have any flights available at the moment. Please check back later or let me help you with something else."
	noMatchesReply    = "I don't have any match tickets available at the moment. Please check back later or let me help you with something else."
	noActivitiesReply = "I don't have any activities available at the moment. Please check back later or let me help you with something else."
)
